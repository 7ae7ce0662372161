package watch

import (
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/compdocs/internal/component"
)

// Resolver maps changed paths to their owning component via a sorted list
// of component root directories. Component roots are disjoint in practice,
// but lookup still prefers the longest matching ancestor to guard against
// accidentally nested roots.
type Resolver struct {
	roots []string // sorted, with trailing separator
	byDir map[string]*component.Component
}

// NewResolver builds a resolver from the components' root directories.
// The resolver is computed once and reused for the watcher's lifetime.
func NewResolver(comps []*component.Component) *Resolver {
	r := &Resolver{byDir: make(map[string]*component.Component, len(comps))}
	for _, c := range comps {
		root := ensureSeparator(c.Dir())
		if _, exists := r.byDir[root]; !exists {
			r.roots = append(r.roots, root)
		}
		r.byDir[root] = c
	}
	sort.Strings(r.roots)
	return r
}

// Resolve returns the component whose root directory is a strict ancestor
// of path, or nil when no root matches. The changed path itself never
// equals a root: watched directories are strictly inside component roots.
func (r *Resolver) Resolve(path string) *component.Component {
	// Every ancestor of path sorts before path, so candidates are the
	// lexicographic predecessors of the insertion point. Scanning backwards
	// hits the deepest matching ancestor first.
	i := sort.SearchStrings(r.roots, path)
	for j := i - 1; j >= 0; j-- {
		if strings.HasPrefix(path, r.roots[j]) {
			return r.byDir[r.roots[j]]
		}
	}
	return nil
}

func ensureSeparator(dir string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}
