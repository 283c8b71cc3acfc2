package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdserve/internal/config"
)

// envPrefix is the namespace of recognized environment variables.
const envPrefix = "MDSERVE_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSERVE_CONFIG: config file name or path
	Addr       string // MDSERVE_ADDR: listen address
	Root       string // MDSERVE_ROOT: document directory
	Style      string // MDSERVE_STYLE: stylesheet name
	Engine     string // MDSERVE_ENGINE: minimal, goldmark
	LogLevel   string // MDSERVE_LOG_LEVEL: trace..error
	Workers    int    // MDSERVE_WORKERS: worker goroutines
	workersSet bool
}

// knownEnvVars lists valid MDSERVE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSERVE_CONFIG":    true,
	"MDSERVE_ADDR":      true,
	"MDSERVE_ROOT":      true,
	"MDSERVE_STYLE":     true,
	"MDSERVE_ENGINE":    true,
	"MDSERVE_LOG_LEVEL": true,
	"MDSERVE_WORKERS":   true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSERVE_CONFIG"),
		Addr:       os.Getenv("MDSERVE_ADDR"),
		Root:       os.Getenv("MDSERVE_ROOT"),
		Style:      os.Getenv("MDSERVE_STYLE"),
		Engine:     os.Getenv("MDSERVE_ENGINE"),
		LogLevel:   os.Getenv("MDSERVE_LOG_LEVEL"),
	}

	// Invalid or negative values are ignored.
	if workers := os.Getenv("MDSERVE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w >= 0 {
			cfg.Workers = w
			cfg.workersSet = true
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized MDSERVE_* variables.
// Helps catch typos like MDSERVE_WORKER instead of MDSERVE_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.workersSet {
		cfg.Server.Workers = env.Workers
	}
	if env.Root != "" {
		cfg.Documents.Root = env.Root
	}
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
