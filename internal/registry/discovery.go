// Package registry discovers a library's documentable components by
// directory convention and indexes them by absolute root path.
package registry

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/hostfs"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

// Discover walks the library root and any configured include subpaths and
// returns the populated component index.
//
// Two passes feed the same index:
//   - each include subpath contributes its immediate subdirectories (the
//     include directory itself is never a component)
//   - the library root contributes its immediate subdirectories, exclude
//     filtered but otherwise unrestricted by the include list
//
// Duplicate absolute paths merge to one entry; missing directories are
// skipped silently.
func Discover(lib config.Library, locales []string) (*Index, error) {
	return DiscoverInto(NewIndex(), lib, locales)
}

// DiscoverInto runs discovery against an existing index. Repeating
// discovery over an unchanged tree leaves the index size stable: known
// paths overwrite their entries instead of duplicating them.
func DiscoverInto(idx *Index, lib config.Library, locales []string) (*Index, error) {
	for _, include := range lib.Include {
		base := filepath.Join(lib.Root, include)
		if !hostfs.PathExists(base) {
			slog.Debug("Include path not found, skipping",
				logfields.Library(lib.Name), logfields.Path(base))
			continue
		}
		if err := registerChildren(idx, base, lib.Exclude, locales); err != nil {
			return nil, err
		}
	}

	includeRoots := make(map[string]struct{}, len(lib.Include))
	for _, include := range lib.Include {
		includeRoots[filepath.Join(lib.Root, include)] = struct{}{}
	}

	dirs, err := hostfs.ListDirs(lib.Root, lib.Exclude)
	if err != nil {
		return nil, err
	}
	for _, name := range dirs {
		root := filepath.Join(lib.Root, name)
		// An include subpath is a grouping directory, not a component.
		if _, isInclude := includeRoots[root]; isInclude {
			continue
		}
		idx.Put(component.New(root, locales))
	}

	slog.Info("Components discovered",
		logfields.Library(lib.Name), logfields.Count(idx.Len()))
	return idx, nil
}

func registerChildren(idx *Index, base string, exclude []string, locales []string) error {
	dirs, err := hostfs.ListDirs(base, exclude)
	if err != nil {
		return err
	}
	for _, name := range dirs {
		root := filepath.Join(base, name)
		idx.Put(component.New(root, locales))
	}
	return nil
}
