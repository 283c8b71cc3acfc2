package mdserve

import (
	"net/url"
	"strings"

	"github.com/alnah/go-mdserve/internal/fileutil"
	"github.com/alnah/go-mdserve/internal/pipeline"
)

// Listing page text.
const (
	ListingTitle     = "Markdown Files Directory"
	NoDocumentsText  = "No markdown files found. Create some .md files to get started!"
	ListingErrorText = "Error reading directory"
)

// listing always answers 200; a directory read failure becomes an inline notice.
func (r *Router) listing() Response {
	names, err := fileutil.ListMarkdownFiles(r.root)
	if err != nil {
		r.logger.Warn("listing failed", "root", r.root, "error", err)
	}
	return Response{
		Status: StatusOK,
		Body:   r.renderer.Page(ListingTitle, listingFragment(names, err, r.index)),
	}
}

// listingFragment renders the listing body. names must already be sorted.
func listingFragment(names []string, readErr error, index string) string {
	var b strings.Builder

	b.WriteString("<h1>" + ListingTitle + "</h1>\n")
	b.WriteString("<p>Available markdown files:</p>\n<ul>\n")

	switch {
	case readErr != nil:
		b.WriteString("<li><em>" + ListingErrorText + "</em></li>\n")
	case len(names) == 0:
		b.WriteString("<li><em>" + NoDocumentsText + "</em></li>\n")
	default:
		for _, name := range names {
			b.WriteString(`<li><a href="/`)
			b.WriteString(pipeline.EscapeHTML(url.PathEscape(name)))
			b.WriteString(`">`)
			b.WriteString(pipeline.EscapeHTML(name))
			b.WriteString("</a></li>\n")
		}
	}
	b.WriteString("</ul>\n")

	b.WriteString("<hr>\n")
	b.WriteString("<p><strong>Usage:</strong></p>\n<ul>\n")
	b.WriteString("<li>Open any .md file directly: <code>/filename.md</code></li>\n")
	b.WriteString("<li>View this directory listing: <code>/" + listPath + "</code></li>\n")
	if index != "" {
		b.WriteString("<li>Create <code>" + pipeline.EscapeHTML(index) + "</code> for a custom homepage</li>\n")
	}
	b.WriteString("</ul>\n")

	return b.String()
}
