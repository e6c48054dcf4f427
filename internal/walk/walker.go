// Package walk enumerates media files under a directory tree and computes
// output paths that mirror the input's relative structure.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Enumerate collects the files under root whose extension is in exts
// (literal, case-sensitive match including the leading dot); an empty exts
// matches every file. When recursive is false only root itself is read.
// Paths are returned sorted lexicographically for deterministic processing
// order.
func Enumerate(root string, exts []string, recursive bool) ([]string, error) {
	matchAll := len(exts) == 0
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if matchAll || extSet[filepath.Ext(path)] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if matchAll || extSet[filepath.Ext(e.Name())] {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
