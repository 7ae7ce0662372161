// Package hostfs wraps the handful of filesystem queries the discovery and
// watch layers share, so exclusion semantics live in one place.
package hostfs

import (
	"os"
	"path/filepath"
)

// PathExists reports whether path exists. Any stat error other than
// non-existence is treated as "not there" — callers skip missing paths
// rather than fail.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListDirs returns the names of the immediate subdirectories of path,
// excluding entries matching any exclude pattern. Patterns are matched
// against the bare directory name, first as an exact string and then via
// filepath.Match. A missing path yields an empty list, not an error.
func ListDirs(path string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if isExcluded(entry.Name(), exclude) {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	return dirs, nil
}

func isExcluded(name string, exclude []string) bool {
	for _, pattern := range exclude {
		if name == pattern {
			return true
		}
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
