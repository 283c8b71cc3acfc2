package pipeline

import "strings"

var (
	// codeEscaper covers every character that could end a text node or an
	// attribute value. Used for fenced code content and page titles.
	codeEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)

	// textEscaper keeps prose readable: quotes and apostrophes stay literal.
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	// attrEscaper finishes text that went through textEscaper so it can sit
	// inside a double-quoted attribute.
	attrEscaper = strings.NewReplacer(`"`, "&quot;")
)

// EscapeHTML escapes &, <, >, " and ' so s renders as literal text.
func EscapeHTML(s string) string {
	return codeEscaper.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
