package pipeline

import (
	"strconv"
	"strings"
)

// fenceMarker opens and closes a fenced code block.
const fenceMarker = "```"

// Engine converts Markdown into an HTML body fragment.
// Implementations must be total: any input yields some HTML.
type Engine interface {
	Fragment(markdown string) string
}

// blockState is the block-level position of the scanner. A document is in
// exactly one of these at a time, so a list can never be open inside code.
type blockState int

const (
	stateNormal blockState = iota
	stateInList
	stateInCode
)

// MinimalEngine renders the small Markdown subset served by default:
// # to ### headings, - and * list items, fenced code, blank-line breaks,
// and paragraphs with inline formatting.
type MinimalEngine struct{}

// Compile-time interface check.
var _ Engine = MinimalEngine{}

// Fragment renders markdown line by line. It never fails.
func (MinimalEngine) Fragment(markdown string) string {
	var b strings.Builder
	b.Grow(len(markdown) + len(markdown)/2)

	s := blockScanner{out: &b}
	for _, line := range splitLines(markdown) {
		s.scan(line)
	}
	s.finish()

	return b.String()
}

// blockScanner carries the render state for a single Fragment call.
type blockScanner struct {
	out   *strings.Builder
	state blockState
	lang  string // only meaningful in stateInCode
}

func (s *blockScanner) scan(line string) {
	if strings.HasPrefix(line, fenceMarker) {
		s.toggleFence(line)
		return
	}

	if s.state == stateInCode {
		s.out.WriteString(EscapeHTML(line))
		s.out.WriteByte('\n')
		return
	}

	switch {
	case strings.HasPrefix(line, "# "):
		s.heading(1, line[2:])
	case strings.HasPrefix(line, "## "):
		s.heading(2, line[3:])
	case strings.HasPrefix(line, "### "):
		s.heading(3, line[4:])
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		s.listItem(line[2:])
	case strings.TrimSpace(line) == "":
		s.closeList()
		s.out.WriteString("<br>\n")
	default:
		s.closeList()
		s.out.WriteString("<p>")
		s.out.WriteString(FormatInline(line))
		s.out.WriteString("</p>\n")
	}
}

func (s *blockScanner) toggleFence(line string) {
	if s.state == stateInCode {
		s.out.WriteString("</code></pre>\n")
		s.state = stateNormal
		s.lang = ""
		return
	}

	s.closeList()
	s.lang = strings.TrimSpace(strings.TrimPrefix(line, fenceMarker))
	if s.lang == "" {
		s.out.WriteString("<pre><code>")
	} else {
		s.out.WriteString(`<pre><code class="language-`)
		s.out.WriteString(EscapeHTML(s.lang))
		s.out.WriteString(`">`)
	}
	s.state = stateInCode
}

// heading emits text without inline formatting.
func (s *blockScanner) heading(level int, text string) {
	s.closeList()
	tag := "h" + strconv.Itoa(level)
	s.out.WriteString("<" + tag + ">")
	s.out.WriteString(text)
	s.out.WriteString("</" + tag + ">\n")
}

func (s *blockScanner) listItem(text string) {
	if s.state != stateInList {
		s.out.WriteString("<ul>\n")
		s.state = stateInList
	}
	s.out.WriteString("<li>")
	s.out.WriteString(FormatInline(text))
	s.out.WriteString("</li>\n")
}

func (s *blockScanner) closeList() {
	if s.state == stateInList {
		s.out.WriteString("</ul>\n")
		s.state = stateNormal
	}
}

// finish closes whatever the input left open so the output stays balanced.
func (s *blockScanner) finish() {
	switch s.state {
	case stateInList:
		s.closeList()
	case stateInCode:
		s.out.WriteString("</code></pre>\n")
		s.state = stateNormal
		s.lang = ""
	}
}

// splitLines splits on \n, drops a trailing \r from each line, and does not
// produce an empty line for a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
