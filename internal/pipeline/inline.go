package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled inline patterns. Code spans are handled by a scanner in
// FormatInline so their content never reaches these.
var (
	// [text](url)
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// **text**, content may hold single asterisks but not start with one
	boldPattern = regexp.MustCompile(`\*\*([^*](?:[^*]|\*[^*])*?)\*\*`)

	// *text*
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
)

// FormatInline converts code spans, links, bold and italic markup within a
// single line into HTML. The line is escaped first, so a literal <tag> inside
// a code span renders as text. Unbalanced delimiters are left as-is.
func FormatInline(line string) string {
	text := escapeText(line)
	if !strings.ContainsAny(text, "`[*") {
		return text
	}

	var out, plain strings.Builder
	rest := text
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			break
		}
		size := strings.IndexByte(rest[open+1:], '`')
		if size < 0 {
			break
		}
		if size == 0 {
			// `` is not a span; the second backtick may still open one.
			plain.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}

		plain.WriteString(rest[:open])
		out.WriteString(formatLinks(plain.String()))
		plain.Reset()

		out.WriteString("<code>")
		out.WriteString(rest[open+1 : open+1+size])
		out.WriteString("</code>")
		rest = rest[open+size+2:]
	}
	plain.WriteString(rest)
	out.WriteString(formatLinks(plain.String()))
	return out.String()
}

// formatLinks renders [text](url) links. The href is taken verbatim; the
// label and the surrounding text still get emphasis.
func formatLinks(s string) string {
	matches := linkPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return emphasize(s)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(emphasize(s[last:m[0]]))
		b.WriteString(`<a href="`)
		b.WriteString(escapeAttr(s[m[4]:m[5]]))
		b.WriteString(`">`)
		b.WriteString(emphasize(s[m[2]:m[3]]))
		b.WriteString("</a>")
		last = m[1]
	}
	b.WriteString(emphasize(s[last:]))
	return b.String()
}

// emphasize applies bold before italic so ** is never read as two * delimiters.
func emphasize(s string) string {
	if !strings.Contains(s, "*") {
		return s
	}
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	return italicPattern.ReplaceAllString(s, "<em>$1</em>")
}
