// Package pathsearch enumerates the files a directory loader should read.
package pathsearch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options controls Search.
type Options struct {
	// Extensions filters files by suffix, compared case-insensitively. A
	// missing leading dot is added ("jpg" matches ".JPG"). Empty means every
	// regular file.
	Extensions []string
	// Recursive descends into subdirectories. The default only looks at the
	// directory's own entries.
	Recursive bool
}

// NormalizeExtensions lowercases exts and makes sure each starts with a dot.
// Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Search returns the regular files (or links to them) under dir that match opts, sorted
// lexicographically by full path. Paths are built with filepath.Join(dir, ...).
func Search(dir string, opts Options) ([]string, error) {
	exts := NormalizeExtensions(opts.Extensions)

	var files []string
	if opts.Recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if isFile(path, d) && matches(path, exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if isFile(path, e) && matches(path, exts) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// isFile reports whether d is a regular file or a symlink resolving to one.
// Broken links are skipped.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func matches(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}
