package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdserve [flags] [directory]")
	fmt.Fprintln(w, "       mdserve <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the markdown files of a directory as HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directory  Document root (default: documents.root from config, or .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:7878)")
	fmt.Fprintln(w, "  -w, --workers <n>         Worker goroutines (0 = auto)")
	fmt.Fprintln(w, "      --max-connections <n> Cap on open connections (0 = unlimited)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Documents:")
	fmt.Fprintln(w, "      --index <name>        Document served at / (default index.md)")
	fmt.Fprintln(w, "      --no-front-matter     Render front matter as text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -e, --engine <name>       Markdown engine: minimal, goldmark")
	fmt.Fprintln(w, "  -s, --style <name>        Stylesheet: default, dark, plain")
	fmt.Fprintln(w, "      --title <s>           Page title when a document has none")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/NAME.css)")
	fmt.Fprintln(w, "      --no-style            Serve pages without a stylesheet")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -l, --log-level <level>   trace, debug, info, warn, error")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every request and worker event")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSERVE_CONFIG, MDSERVE_ADDR, MDSERVE_ROOT, MDSERVE_WORKERS,")
	fmt.Fprintln(w, "  MDSERVE_STYLE, MDSERVE_ENGINE, MDSERVE_LOG_LEVEL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Requests:")
	fmt.Fprintln(w, "  GET /          index document, or the listing when absent")
	fmt.Fprintln(w, "  GET /list      listing of the directory's .md files")
	fmt.Fprintln(w, "  GET /NAME.md   rendered document")
}

// printVersion prints the build version.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "mdserve %s\n", Version)
}
