package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/harrison/dsckit/internal/config"
)

// MarkdownExt is the extension matched by the lint patterns.
const MarkdownExt = "*.md"

// ErrBadPattern is returned when a glob pattern cannot be parsed.
var ErrBadPattern = doublestar.ErrBadPattern

// RecursivePattern returns the pattern matching markdown files at any depth below dir.
func RecursivePattern(dir string) string {
	return trimDir(dir) + "/**/" + MarkdownExt
}

// TopLevelPattern returns the pattern matching markdown files directly inside dir.
func TopLevelPattern(dir string) string {
	return trimDir(dir) + "/" + MarkdownExt
}

// trimDir drops trailing separators so "docs/" and "docs" build the same pattern.
// The filesystem root is kept as an empty prefix, yielding "/<pattern>".
func trimDir(dir string) string {
	return strings.TrimRight(dir, `/\`)
}

// BuildPatterns converts parsed lint flags into the ordered pattern list:
// every resource path (recursive) first, then every root path (top level only).
// Absent flags contribute nothing; an empty result is legal.
func BuildPatterns(opts config.LintOptions) []string {
	patterns := make([]string, 0, len(opts.ResourcePaths)+len(opts.RootPaths))
	for _, dir := range opts.ResourcePaths {
		patterns = append(patterns, RecursivePattern(dir))
	}
	for _, dir := range opts.RootPaths {
		patterns = append(patterns, TopLevelPattern(dir))
	}
	return patterns
}

// MatchFunc is called for each file matched by WalkPattern.
// Returning an error stops the walk and is returned by WalkPattern.
type MatchFunc func(path string) error

// WalkPattern streams every regular file matching pattern to fn, in directory
// enumeration order. Hidden files and anything below a hidden directory below
// the pattern base are skipped. A missing base directory yields no matches,
// not an error.
func WalkPattern(pattern string, fn MatchFunc) error {
	slashed := filepath.ToSlash(filepath.Clean(pattern))
	if !doublestar.ValidatePattern(slashed) {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, ErrBadPattern)
	}

	base, rest := doublestar.SplitPattern(slashed)
	baseDir := filepath.FromSlash(base)

	info, err := os.Stat(baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to access %s: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil
	}

	return doublestar.GlobWalk(os.DirFS(baseDir), rest, func(match string, d fs.DirEntry) error {
		if isHidden(match) {
			return nil
		}
		return fn(filepath.Join(baseDir, filepath.FromSlash(match)))
	}, doublestar.WithFilesOnly())
}

// isHidden reports whether any segment of a slash-separated path starts with a dot.
func isHidden(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// ExpandPatterns returns every match of every pattern, in pattern order.
// Duplicates are kept: a file matching two patterns appears twice.
func ExpandPatterns(patterns []string) ([]string, error) {
	files := make([]string, 0)
	for _, pattern := range patterns {
		err := WalkPattern(pattern, func(path string) error {
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
