package pipeline

import "testing"

func TestFormatInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"code span", "use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"code span escapes markup", "`<b>&</b>`", "<code>&lt;b&gt;&amp;&lt;/b&gt;</code>"},
		{"code span protects emphasis", "`**x**` and **y**", "<code>**x**</code> and <strong>y</strong>"},
		{"code span protects link", "`[a](b)`", "<code>[a](b)</code>"},
		{"two code spans", "`a` and `b`", "<code>a</code> and <code>b</code>"},
		{"unclosed backtick", "a `b", "a `b"},
		{"empty code span is literal", "a `` b", "a `` b"},
		{"double backtick then span", "``x`", "`<code>x</code>"},
		{"link", "Visit [site](http://x.com) now", `Visit <a href="http://x.com">site</a> now`},
		{"link with query", "[q](http://x.com/?a=1&b=2)", `<a href="http://x.com/?a=1&amp;b=2">q</a>`},
		{"link href quotes escaped", `[q](http://x.com/"on)`, `<a href="http://x.com/&quot;on">q</a>`},
		{"link label emphasis", "[**bold**](u)", `<a href="u"><strong>bold</strong></a>`},
		{"link href keeps asterisks", "[a](http://x/*y*)", `<a href="http://x/*y*">a</a>`},
		{"two links", "[a](1) [b](2)", `<a href="1">a</a> <a href="2">b</a>`},
		{"unbalanced bracket", "[a](b", "[a](b"},
		{"bold", "**bold**", "<strong>bold</strong>"},
		{"italic", "*it*", "<em>it</em>"},
		{"bold then italic", "**b** and *i*", "<strong>b</strong> and <em>i</em>"},
		{"italic inside bold", "**a *b* c**", "<strong>a <em>b</em> c</strong>"},
		{"triple asterisks", "***x***", "<em><strong>x</strong></em>"},
		{"non-greedy bold", "**a** b **c**", "<strong>a</strong> b <strong>c</strong>"},
		{"non-greedy italic", "*a* b *c*", "<em>a</em> b <em>c</em>"},
		{"lone asterisk", "2 * 3", "2 * 3"},
		{"unclosed bold", "**open", "**open"},
		{"escapes tags", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"escapes ampersand", "a & b", "a &amp; b"},
		{"keeps apostrophes", "it's \"quoted\"", "it's \"quoted\""},
		{"code then link", "`x` [l](u)", `<code>x</code> <a href="u">l</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatInline(tt.input); got != tt.want {
				t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	got := EscapeHTML(`<a href="x">Tom & Jerry's</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#x27;s&lt;/a&gt;"
	if got != want {
		t.Errorf("EscapeHTML() = %q, want %q", got, want)
	}
}
