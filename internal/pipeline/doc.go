// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// This package handles the three stages a served document goes through:
//   - Preprocessing (line ending normalization, front matter extraction)
//   - Fragment rendering by an Engine
//   - Page assembly (document header, stylesheet, closing tags)
//
// Two engines are provided. MinimalEngine is a line-oriented state machine
// over a small Markdown subset (headings, lists, fenced code, paragraphs with
// inline code, links, bold and italic). GoldmarkEngine delegates to goldmark
// for full CommonMark with GFM extensions and chroma syntax highlighting.
//
// Rendering is total: malformed input degrades to literal text and unclosed
// blocks are closed at end of input, so callers never handle render errors.
package pipeline
