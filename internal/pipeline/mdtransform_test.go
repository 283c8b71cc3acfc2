package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPreprocessor_Prepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		frontMatter bool
		input       string
		want        Document
	}{
		{
			name:  "normalizes CRLF",
			input: "a\r\nb\r\n",
			want:  Document{Body: "a\nb\n"},
		},
		{
			name:  "normalizes lone CR",
			input: "a\rb",
			want:  Document{Body: "a\nb"},
		},
		{
			name:  "front matter left alone when disabled",
			input: "---\ntitle: T\n---\n# Body\n",
			want:  Document{Body: "---\ntitle: T\n---\n# Body\n"},
		},
		{
			name:        "yaml front matter",
			frontMatter: true,
			input:       "---\ntitle: Guide\n---\n# Body\n",
			want:        Document{Title: "Guide", Body: "# Body\n"},
		},
		{
			name:        "toml front matter",
			frontMatter: true,
			input:       "+++\ntitle = \"Notes\"\n+++\ntext\n",
			want:        Document{Title: "Notes", Body: "text\n"},
		},
		{
			name:        "front matter with CRLF",
			frontMatter: true,
			input:       "---\r\ntitle: Win\r\n---\r\nbody\r\n",
			want:        Document{Title: "Win", Body: "body\n"},
		},
		{
			name:        "no front matter",
			frontMatter: true,
			input:       "# Plain\n",
			want:        Document{Body: "# Plain\n"},
		},
		{
			name:        "malformed front matter keeps source",
			frontMatter: true,
			input:       "---\ntitle: [unclosed\n---\nbody\n",
			want:        Document{Body: "---\ntitle: [unclosed\n---\nbody\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Preprocessor{FrontMatter: tt.frontMatter}
			got := p.Prepare(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Prepare(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
