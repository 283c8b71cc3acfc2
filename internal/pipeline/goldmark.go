package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used for fenced code.
const DefaultHighlightStyle = "github"

// ErrHighlightCSS indicates the chroma stylesheet could not be generated.
var ErrHighlightCSS = errors.New("highlight stylesheet generation failed")

// GoldmarkEngine renders full CommonMark + GFM through goldmark, with
// class-based syntax highlighting for fenced code.
type GoldmarkEngine struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ Engine = (*GoldmarkEngine)(nil)

// NewGoldmarkEngine creates a GoldmarkEngine highlighting code with the named
// chroma style. Raw HTML in documents is not passed through.
func NewGoldmarkEngine(highlightStyle string) *GoldmarkEngine {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // paired with HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &GoldmarkEngine{md: md}
}

// Fragment converts markdown with goldmark. Conversion only fails on writer
// errors, which a bytes.Buffer never returns; the fallback keeps the
// contract total anyway.
func (e *GoldmarkEngine) Fragment(markdown string) string {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &buf); err != nil {
		return "<pre><code>" + EscapeHTML(markdown) + "</code></pre>\n"
	}
	return buf.String()
}

// HighlightCSS returns the stylesheet for the class names GoldmarkEngine
// emits. Unknown style names fall back to chroma's default style.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style := styles.Get(styleName)

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightCSS, err)
	}
	return buf.String(), nil
}
