package mdserve

import (
	"bytes"
	"fmt"
	"strings"
)

// Protocol versions accepted on the request line.
const (
	ProtoHTTP11 = "HTTP/1.1"
	ProtoHTTP10 = "HTTP/1.0"
)

// Request is a parsed request line.
type Request struct {
	Method  string
	Target  string // as sent, e.g. "/guide.md"
	Version string
}

// ParseRequestLine splits "METHOD TARGET VERSION". The target is everything
// between the first and the last space, so names containing spaces survive.
func ParseRequestLine(line string) (Request, error) {
	first := strings.IndexByte(line, ' ')
	last := strings.LastIndexByte(line, ' ')
	if first <= 0 || last <= first+1 {
		return Request{}, fmt.Errorf("%w: %q", ErrMalformedRequest, line)
	}

	req := Request{
		Method:  line[:first],
		Target:  line[first+1 : last],
		Version: line[last+1:],
	}

	if req.Method != "GET" {
		return Request{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}
	if req.Version != ProtoHTTP11 && req.Version != ProtoHTTP10 {
		return Request{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, req.Version)
	}
	if !strings.HasPrefix(req.Target, "/") {
		return Request{}, fmt.Errorf("%w: target %q", ErrMalformedRequest, req.Target)
	}

	return req, nil
}

// FirstLine extracts the request line from raw bytes read off a connection.
// Invalid UTF-8 is replaced rather than rejected; a trailing \r is dropped.
func FirstLine(raw []byte) string {
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	raw = bytes.TrimSuffix(raw, []byte("\r"))
	// Unused buffer space is zero bytes, never part of the line.
	raw = bytes.TrimRight(raw, "\x00")
	return strings.ToValidUTF8(string(raw), "�")
}
