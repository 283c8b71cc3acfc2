package mdserve

import "errors"

// Sentinel errors for library operations.
var (
	// Worker pool errors.
	ErrPoolClosed = errors.New("worker pool is shut down")
	ErrNilJob     = errors.New("job cannot be nil")

	// Request errors.
	ErrMalformedRequest   = errors.New("malformed request line")
	ErrUnsupportedMethod  = errors.New("unsupported method")
	ErrUnsupportedVersion = errors.New("unsupported protocol version")

	// Document resolution errors.
	ErrDocumentNotFound = errors.New("document not found")

	// Server errors.
	ErrServerRunning = errors.New("server is already serving")
)
