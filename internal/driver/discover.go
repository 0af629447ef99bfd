package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands the given paths into a sorted, de-duplicated list of
// formattable files. Directories are walked recursively; explicit file
// arguments are taken as-is even with a foreign extension.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range paths {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// skip dot-directories like .git
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasSourceExt(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("driver: walk %s: %w", arg, err)
		}
	}

	// детерминированный порядок для параллельного запуска
	sort.Strings(files)
	return files, nil
}

func hasSourceExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".robot", ".resource":
		return true
	}
	return false
}
