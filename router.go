package mdserve

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/alnah/go-mdserve/internal/fileutil"
	"github.com/alnah/go-mdserve/internal/logging"
	"github.com/alnah/go-mdserve/internal/pipeline"
)

// Default router settings.
const (
	DefaultIndex = "index.md"
	listPath     = "list"
)

// Handler maps a request line to a response.
type Handler interface {
	Route(requestLine string) Response
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(requestLine string) Response

// Route calls f.
func (f HandlerFunc) Route(requestLine string) Response { return f(requestLine) }

// Router serves Markdown documents from a single directory.
// It holds no per-request state and is safe for concurrent use.
type Router struct {
	root     string
	index    string
	renderer *pipeline.Renderer
	prep     pipeline.Preprocessor
	logger   logging.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithIndex sets the document served for "/". Empty disables the index and
// "/" always shows the listing.
func WithIndex(name string) RouterOption {
	return func(r *Router) {
		r.index = name
	}
}

// WithRenderer sets the page renderer.
func WithRenderer(renderer *pipeline.Renderer) RouterOption {
	return func(r *Router) {
		if renderer != nil {
			r.renderer = renderer
		}
	}
}

// WithFrontMatter enables front matter stripping and titles.
func WithFrontMatter(enabled bool) RouterOption {
	return func(r *Router) {
		r.prep.FrontMatter = enabled
	}
}

// WithRouterLogger sets the logger for document read failures.
func WithRouterLogger(l logging.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRouter creates a Router for documents directly inside root.
func NewRouter(root string, opts ...RouterOption) *Router {
	r := &Router{
		root:     root,
		index:    DefaultIndex,
		renderer: pipeline.NewRenderer(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route answers one request line. It never fails: anything unrecognized or
// unreadable becomes the not-found page.
func (r *Router) Route(requestLine string) Response {
	req, err := ParseRequestLine(requestLine)
	if err != nil {
		r.logger.Debug("rejected request line", "error", err)
		return r.notFound()
	}

	target, err := url.PathUnescape(req.Target)
	if err != nil {
		return r.notFound()
	}
	name := strings.TrimLeft(target, "/")

	switch {
	case name == "":
		return r.home()
	case name == listPath:
		return r.listing()
	case fileutil.IsMarkdownName(name):
		return r.document(name)
	default:
		return r.notFound()
	}
}

// home serves the index document when present, otherwise the listing.
func (r *Router) home() Response {
	if r.index == "" {
		return r.listing()
	}
	path, err := fileutil.SafeJoin(r.root, r.index)
	if err != nil || !fileutil.FileExists(path) {
		return r.listing()
	}
	return r.document(r.index)
}

// document renders name from the root, or the not-found page.
func (r *Router) document(name string) Response {
	page, err := r.renderFile(name)
	if err != nil {
		if !errors.Is(err, ErrDocumentNotFound) {
			r.logger.Warn("document read failed", "name", name, "error", err)
		}
		return r.notFound()
	}
	return Response{Status: StatusOK, Body: page}
}

func (r *Router) renderFile(name string) (string, error) {
	path, err := fileutil.SafeJoin(r.root, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentNotFound, err)
	}
	if !fileutil.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- name and symlink target checked by SafeJoin
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	return r.renderer.RenderDocument(r.prep.Prepare(string(data))), nil
}

// notFound returns the static not-found page.
func (r *Router) notFound() Response {
	body := "<h1>404 - Page Not Found</h1><p>The requested file could not be found.</p>"
	return Response{Status: StatusNotFound, Body: r.renderer.Page("Page Not Found", body)}
}
