// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownExt is the extension of servable documents.
const MarkdownExt = ".md"

// Sentinel errors for file utility operations.
var (
	ErrEmptyName     = errors.New("file name cannot be empty")
	ErrUnsafeName    = errors.New("file name contains path separator, traversal or null byte")
	ErrNotADirectory = errors.New("not a directory")
	ErrOutsideRoot   = errors.New("path resolves outside the root directory")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "server" -> false (name)
//   - "./mdserve.yaml" -> true (relative path)
//   - "/etc/mdserve.yaml" -> true (absolute)
//   - "C:\mdserve.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsMarkdownName reports whether name is a plain file name ending in ".md".
func IsMarkdownName(name string) bool {
	return ValidateName(name) == nil && strings.HasSuffix(name, MarkdownExt) && len(name) > len(MarkdownExt)
}

// ValidateName checks that name refers to a single entry of a directory:
// no separators, no "." or "..", no null bytes, not absolute.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") || filepath.IsAbs(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}

// SafeJoin joins a validated entry name onto root. When the entry exists,
// it must still be below root after symlink resolution.
func SafeJoin(root, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(root, name)
	if err := contained(root, path); err != nil {
		return "", err
	}
	return path, nil
}

// contained reports ErrOutsideRoot when path resolves outside root.
// A missing path keeps its lexical form; the later open fails instead.
func contained(root, path string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve %s", ErrOutsideRoot, root)
	}
	realPath, err = filepath.Abs(realPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}
	realRoot, err = filepath.Abs(realRoot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}
	if !strings.HasPrefix(realPath, realRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return nil
}

// ListMarkdownFiles returns the names of the regular ".md" files directly
// inside dir, sorted byte-wise. Subdirectories are not descended into.
func ListMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsMarkdownName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ValidateRoot checks that dir exists and is a directory, returning its
// absolute path.
func ValidateRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}
	return abs, nil
}
