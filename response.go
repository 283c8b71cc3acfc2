package mdserve

import (
	"io"
	"strconv"
	"strings"
)

// Status is a response status code.
type Status int

// Statuses produced by the router.
const (
	StatusOK       Status = 200
	StatusNotFound Status = 404
)

// Line returns the full status line without its line terminator.
func (s Status) Line() string {
	switch s {
	case StatusOK:
		return "HTTP/1.1 200 OK"
	case StatusNotFound:
		return "HTTP/1.1 404 NOT FOUND"
	default:
		return "HTTP/1.1 " + strconv.Itoa(int(s))
	}
}

const (
	crlf        = "\r\n"
	contentType = "text/html; charset=utf-8"
)

// Response is a complete HTML response.
type Response struct {
	Status Status
	Body   string
}

// String frames the response: status line, Content-Type, Content-Length
// (in bytes), a blank line, then the body.
func (r Response) String() string {
	var b strings.Builder
	b.Grow(len(r.Body) + 96)

	b.WriteString(r.Status.Line())
	b.WriteString(crlf)
	b.WriteString("Content-Type: ")
	b.WriteString(contentType)
	b.WriteString(crlf)
	b.WriteString("Content-Length: ")
	b.WriteString(strconv.Itoa(len(r.Body)))
	b.WriteString(crlf)
	b.WriteString(crlf)
	b.WriteString(r.Body)

	return b.String()
}

// WriteTo writes the framed response to w.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
