// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/alnah/go-mdserve/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForListen returns hints for listener errors on addr.
func ForListen(addr string, err error) string {
	var hints []string

	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		hints = append(hints, "another process is using "+addr+"; pick one with --addr")
	case errors.Is(err, syscall.EACCES):
		hints = append(hints, "ports below 1024 need elevated privileges; try --addr 127.0.0.1:7878")
	}

	// Loopback inside a container is unreachable from the host.
	if host, _, splitErr := net.SplitHostPort(addr); splitErr == nil && IsInContainer() {
		if ip := net.ParseIP(host); host == "localhost" || (ip != nil && ip.IsLoopback()) {
			hints = append(hints, "bind 0.0.0.0 to reach the server from outside the container")
		}
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdserve/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdserve") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForDocumentRoot returns a hint for an unusable document directory.
func ForDocumentRoot() string {
	return format("pass an existing directory as argument or set documents.root")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEngine returns a hint listing the render engines.
func ForEngine() string {
	return format("engines: minimal, goldmark")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
