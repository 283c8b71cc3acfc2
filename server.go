package mdserve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"golang.org/x/net/netutil"

	"github.com/alnah/go-mdserve/internal/logging"
)

// DefaultReadBufferSize is how many bytes of a request are read.
const DefaultReadBufferSize = 1024

// Server accepts connections and hands each one to a worker pool.
// Every connection carries exactly one request and one response.
type Server struct {
	handler        Handler
	pool           *WorkerPool
	logger         logging.Logger
	readBufferSize int
	readTimeout    time.Duration
	writeTimeout   time.Duration
	maxConns       int
	serving        atomic.Bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithReadBufferSize sets how many request bytes are read per connection.
func WithReadBufferSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.readBufferSize = n
		}
	}
}

// WithTimeouts sets per-connection read and write deadlines. Zero disables one.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithMaxConnections caps simultaneously open connections. Zero means no cap.
func WithMaxConnections(n int) ServerOption {
	return func(s *Server) {
		s.maxConns = n
	}
}

// WithServerLogger sets the logger for connections and requests.
func WithServerLogger(l logging.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a Server. The server takes ownership of pool and shuts
// it down when Serve returns.
func NewServer(handler Handler, pool *WorkerPool, opts ...ServerOption) *Server {
	s := &Server{
		handler:        handler,
		pool:           pool,
		logger:         logging.Nop(),
		readBufferSize: DefaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln,
// waits for queued and in-flight connections to finish and returns nil.
// Accept errors are logged and retried with backoff; ctx is also handed to
// each connection's logger.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if !s.serving.CompareAndSwap(false, true) {
		return ErrServerRunning
	}
	defer s.pool.Shutdown()

	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer func() { _ = ln.Close() }()

	s.logger.Info("listening", "addr", ln.Addr().String(), "workers", s.pool.Size())

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("shutting down", "pending", s.pool.Pending())
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			// Accept failures such as EMFILE are retried until ctx ends.
			backoff = nextAcceptBackoff(backoff)
			s.logger.Warn("accept failed, retrying", "error", err, "backoff", backoff.String())
			select {
			case <-ctx.Done():
				s.logger.Info("shutting down", "pending", s.pool.Pending())
				return nil
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0

		if err := s.pool.Submit(s.connectionJob(ctx, conn)); err != nil {
			_ = conn.Close()
			return fmt.Errorf("dispatching connection: %w", err)
		}
	}
}

// Accept retry delays, doubled per consecutive failure.
const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

func nextAcceptBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptBackoff
	}
	return min(2*d, maxAcceptBackoff)
}

// connectionJob wraps a connection so the pool can run it.
func (s *Server) connectionJob(ctx context.Context, conn net.Conn) Job {
	return JobFunc(func() { s.handle(ctx, conn) })
}

// handle serves one connection. I/O failures are logged and the connection
// dropped; they never reach the worker.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()
	logger := s.logger.WithContext(ctx)
	remote := conn.RemoteAddr().String()

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}
	buf := make([]byte, s.readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		logger.Warn("dropping connection", "remote", remote, "error", readError(err))
		return
	}

	line := FirstLine(buf[:n])
	resp := s.handler.Route(line)

	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if _, err := resp.WriteTo(conn); err != nil {
		logger.Warn("writing response failed", "remote", remote, "error", err)
		return
	}

	logger.Info("request", "remote", remote, "line", line, "status", int(resp.Status), "bytes", len(resp.Body))
}

// readError names an empty read that carried no error.
func readError(err error) error {
	if err == nil {
		return errors.New("empty request")
	}
	return err
}
