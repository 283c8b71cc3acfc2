package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// workersUnset detects if --workers was explicitly set.
// Since 0 is a valid value (auto), we use an out-of-range sentinel.
const workersUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serverFlags holds listener flags.
type serverFlags struct {
	addr           string
	workers        int
	maxConnections int
}

// documentFlags holds document source flags.
type documentFlags struct {
	index         string
	noFrontMatter bool
}

// renderFlags holds page rendering flags.
type renderFlags struct {
	engine    string
	style     string
	title     string
	assetPath string
	noStyle   bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common   commonFlags
	server   serverFlags
	document documentFlags
	render   renderFlags
	logLevel string
	help     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every request and worker event")
}

// addServerFlags adds listener flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:7878)")
	fs.IntVarP(&f.workers, "workers", "w", workersUnset, "worker goroutines (0 = auto)")
	fs.IntVar(&f.maxConnections, "max-connections", 0, "cap on open connections (0 = unlimited)")
}

// addDocumentFlags adds document source flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.index, "index", "", "document served at / (default index.md)")
	fs.BoolVar(&f.noFrontMatter, "no-front-matter", false, "render front matter as text")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: minimal, goldmark")
	fs.StringVarP(&f.style, "style", "s", "", "stylesheet name")
	fs.StringVar(&f.title, "title", "", "page title when a document has none")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "serve pages without a stylesheet")
}

// buildServeFlagSet registers every serve flag on a new FlagSet.
func buildServeFlagSet(f *serveFlags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("mdserve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)
	fs.StringVarP(&f.logLevel, "log-level", "l", "", "log level: trace, debug, info, warn, error")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	fs.Usage = func() { printUsage(stderr) }
	return fs
}

// parseServeFlags parses serve flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := buildServeFlagSet(f, stderr)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
