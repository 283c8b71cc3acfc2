package pipeline

import "strings"

// DefaultTitle is the page title used when a document does not set one.
const DefaultTitle = "Markdown Server"

// Renderer turns Markdown into a complete HTML page: a fixed document header
// with the embedded stylesheet, the engine's fragment, and the closing tags.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	engine     Engine
	title      string
	stylesheet string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine sets the Markdown engine. Defaults to MinimalEngine.
func WithEngine(e Engine) RendererOption {
	return func(r *Renderer) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithTitle sets the fallback page title.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithStylesheet sets the CSS embedded in every page header.
func WithStylesheet(css string) RendererOption {
	return func(r *Renderer) {
		r.stylesheet = css
	}
}

// NewRenderer creates a Renderer using MinimalEngine unless overridden.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		engine: MinimalEngine{},
		title:  DefaultTitle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts markdown to a standalone HTML document.
func (r *Renderer) Render(markdown string) string {
	return r.RenderDocument(Document{Body: markdown})
}

// RenderDocument renders doc.Body, titling the page with doc.Title when set.
func (r *Renderer) RenderDocument(doc Document) string {
	title := doc.Title
	if title == "" {
		title = r.title
	}
	return r.Page(title, r.engine.Fragment(doc.Body))
}

// Page wraps an already rendered body in the document header and footer.
// The title is escaped; body is written verbatim.
func (r *Renderer) Page(title, body string) string {
	var b strings.Builder
	b.Grow(len(r.stylesheet) + len(body) + 256)

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>")
	b.WriteString(EscapeHTML(title))
	b.WriteString("</title>\n")
	if r.stylesheet != "" {
		b.WriteString("    <style>\n")
		b.WriteString(r.stylesheet)
		if !strings.HasSuffix(r.stylesheet, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("    </style>\n")
	}
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString(body)
	b.WriteString("</body></html>")

	return b.String()
}
