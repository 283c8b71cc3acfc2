package pipeline

import (
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Document is a markdown source ready for rendering.
type Document struct {
	Title string // from front matter, empty when absent
	Body  string // markdown without front matter
}

// frontMatter holds the metadata fields the server uses.
type frontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Preprocessor prepares raw file content for rendering.
type Preprocessor struct {
	// FrontMatter strips a leading YAML (---), TOML (+++) or JSON block
	// and takes the page title from it.
	FrontMatter bool
}

// Prepare normalizes line endings and, when enabled, extracts front matter.
// Malformed front matter is left in the body untouched.
func (p Preprocessor) Prepare(source string) Document {
	content := normalizeLineEndings(source)
	if !p.FrontMatter {
		return Document{Body: content}
	}

	meta, body, ok := parseFrontMatter(content)
	if !ok {
		return Document{Body: content}
	}
	return Document{
		Title: strings.TrimSpace(meta.Title),
		Body:  body,
	}
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

func parseFrontMatter(content string) (frontMatter, string, bool) {
	var meta frontMatter
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return frontMatter{}, "", false
	}
	return meta, string(body), true
}
