// Package fsutil provides file system helpers for map files: discovery and
// transparently compressed streams.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// MapExtensions are the suffixes recognized as map files.
var MapExtensions = []string{".vmf", ".vmf.gz", ".vmf.zst"}

// HasExtension reports whether name ends with one of the extensions.
func HasExtension(name string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// FindFilesByExtension recursively searches the given root path for all files ending
// with one of the specified extensions. Paths are returned in lexical walk order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 || strings.Join(extensions, "") == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasExtension(d.Name(), extensions...) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
