package main

import (
	"io"
	"net"
	"os"
)

// Environment holds injectable dependencies for testability.
// Includes I/O and the listener factory.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Listen func(network, addr string) (net.Listener, error)
	// Ready, when set, is called with the bound address once serving starts.
	Ready func(addr net.Addr)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Listen: net.Listen,
	}
}
