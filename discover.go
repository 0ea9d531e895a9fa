package cssaudit

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DiscoverStats tracks file discovery statistics
type DiscoverStats struct {
	FilesDiscovered int // Total files matched by glob patterns
	FilesSelected   int // Files kept after filtering
	FilesSkipped    int // Files skipped as generated, vendored or ignored
}

// skipDirs are never descended into, whatever the patterns say
var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"vendor":       {},
	".cache":       {},
}

// isTemplGenerated checks if a file is a templ-generated Go file.
// The .templ source is scanned instead.
func isTemplGenerated(p string) bool {
	return strings.HasSuffix(p, "_templ.go") ||
		strings.HasSuffix(p, ".templ.go")
}

// inSkippedDir reports whether any directory segment of a slash path is skipped
func inSkippedDir(p string) bool {
	dir := path.Dir(p)
	for dir != "." && dir != "/" && dir != "" {
		if _, skip := skipDirs[path.Base(dir)]; skip {
			return true
		}
		dir = path.Dir(dir)
	}
	return false
}

// loadGitIgnore compiles root/.gitignore. A missing file is not an error.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// DiscoverFiles expands glob patterns (doublestar syntax, "**" included)
// relative to root and returns the matching files, deduplicated and sorted.
//
// Relative patterns yield slash-separated paths relative to root and are
// filtered in two layers: templ-generated files and skipped directories
// first, then root/.gitignore. Absolute patterns are returned as is and
// are not affected by the project's ignore rules.
func DiscoverFiles(root string, patterns []string) ([]string, DiscoverStats, error) {
	if root == "" {
		root = "."
	}

	var stats DiscoverStats
	gi := loadGitIgnore(root)
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		var matches []string
		var err error
		absolute := filepath.IsAbs(pattern)
		if absolute {
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		} else {
			pattern = filepath.ToSlash(pattern)
			if !doublestar.ValidatePattern(pattern) {
				return nil, stats, fmt.Errorf("invalid glob pattern %q", pattern)
			}
			matches, err = doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		}
		if err != nil {
			return nil, stats, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match, absolute, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesSelected++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// shouldSkipFile determines if a discovered file should be excluded.
// Ignore rules only apply to paths inside the project.
func shouldSkipFile(p string, absolute bool, gi *ignore.GitIgnore) bool {
	if isTemplGenerated(p) {
		return true
	}
	if absolute {
		return false
	}
	if inSkippedDir(p) {
		return true
	}
	return gi != nil && gi.MatchesPath(p)
}

// resolvePath turns a discovered path back into an OS path under root
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// readFile reads a discovered file
func readFile(root, p string) (string, error) {
	data, err := os.ReadFile(resolvePath(root, p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
