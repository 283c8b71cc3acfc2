package mdserve_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	mdserve "github.com/alnah/go-mdserve"
	"github.com/alnah/go-mdserve/internal/pipeline"
)

// Example serves a directory on a loopback port and fetches one page.
func Example() {
	dir, err := os.MkdirTemp("", "mdserve-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Hello World\n"), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	srv := mdserve.NewServer(mdserve.NewRouter(dir), mdserve.NewWorkerPool(2))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_, _ = io.WriteString(conn, "GET / HTTP/1.1\r\n\r\n")
	resp, _ := io.ReadAll(conn)
	_ = conn.Close()

	cancel()
	fmt.Println("shutdown error:", <-done)

	status, _, _ := strings.Cut(string(resp), "\r\n")
	fmt.Println(status)
	fmt.Println(strings.Contains(string(resp), "<h1>Hello World</h1>"))
	// Output:
	// shutdown error: <nil>
	// HTTP/1.1 200 OK
	// true
}

// ExampleParseRequestLine shows how a request line is split.
func ExampleParseRequestLine() {
	req, err := mdserve.ParseRequestLine("GET /release notes.md HTTP/1.1")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s|%s|%s\n", req.Method, req.Target, req.Version)

	_, err = mdserve.ParseRequestLine("POST / HTTP/1.1")
	fmt.Println(err)
	// Output:
	// GET|/release notes.md|HTTP/1.1
	// unsupported method: "POST"
}

// ExampleFirstLine extracts the request line from a raw read buffer.
func ExampleFirstLine() {
	buf := make([]byte, 64)
	copy(buf, "GET /list HTTP/1.1\r\nHost: localhost\r\n\r\n")

	fmt.Printf("%q\n", mdserve.FirstLine(buf))
	// Output: "GET /list HTTP/1.1"
}

// ExampleResponse_String shows the framing written to a connection.
func ExampleResponse_String() {
	resp := mdserve.Response{Status: mdserve.StatusNotFound, Body: "<p>é</p>"}

	for _, line := range strings.Split(resp.String(), "\r\n") {
		fmt.Println(line)
	}
	// Output:
	// HTTP/1.1 404 NOT FOUND
	// Content-Type: text/html; charset=utf-8
	// Content-Length: 9
	//
	// <p>é</p>
}

// ExampleRouter_Route routes request lines against a document directory.
func ExampleRouter_Route() {
	dir, err := os.MkdirTemp("", "mdserve-route")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "guide.md"), []byte("# Guide\n"), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	router := mdserve.NewRouter(dir,
		mdserve.WithRenderer(pipeline.NewRenderer(pipeline.WithTitle("Docs"))),
	)

	for _, line := range []string{
		"GET /guide.md HTTP/1.1",
		"GET /list HTTP/1.1",
		"GET /../etc/passwd.md HTTP/1.1",
		"GET /guide.txt HTTP/1.1",
	} {
		fmt.Println(router.Route(line).Status.Line())
	}
	// Output:
	// HTTP/1.1 200 OK
	// HTTP/1.1 200 OK
	// HTTP/1.1 404 NOT FOUND
	// HTTP/1.1 404 NOT FOUND
}

// ExampleWorkerPool runs jobs on a fixed set of goroutines.
func ExampleWorkerPool() {
	pool := mdserve.NewWorkerPool(3)

	var wg sync.WaitGroup
	var ran atomic.Int32
	for range 10 {
		wg.Add(1)
		_ = pool.Submit(mdserve.JobFunc(func() {
			defer wg.Done()
			ran.Add(1)
		}))
	}
	wg.Wait()
	pool.Shutdown()

	fmt.Println("workers:", pool.Size())
	fmt.Println("jobs run:", ran.Load())
	fmt.Println("after shutdown:", pool.Submit(mdserve.JobFunc(func() {})))
	// Output:
	// workers: 3
	// jobs run: 10
	// after shutdown: worker pool is shut down
}
