package registry

import (
	"git.home.luguber.info/inful/compdocs/internal/component"
)

// Index maps absolute component root directories to components while
// preserving insertion order. Full builds iterate in this order, so it is
// part of the observable contract, not an implementation nicety.
type Index struct {
	keys  []string
	items map[string]*component.Component
}

// NewIndex creates an empty component index.
func NewIndex() *Index {
	return &Index{items: make(map[string]*component.Component)}
}

// Put registers a component under its root directory. Re-registering an
// existing key overwrites the entry in place and keeps its original
// position; the index never grows duplicates.
func (idx *Index) Put(c *component.Component) {
	key := c.Dir()
	if _, exists := idx.items[key]; !exists {
		idx.keys = append(idx.keys, key)
	}
	idx.items[key] = c
}

// Get returns the component registered under the absolute directory key.
func (idx *Index) Get(dir string) (*component.Component, bool) {
	c, ok := idx.items[dir]
	return c, ok
}

// Len returns the number of registered components.
func (idx *Index) Len() int { return len(idx.keys) }

// Components returns all components in insertion order.
func (idx *Index) Components() []*component.Component {
	out := make([]*component.Component, 0, len(idx.keys))
	for _, key := range idx.keys {
		out = append(out, idx.items[key])
	}
	return out
}

// Keys returns the absolute directory keys in insertion order.
func (idx *Index) Keys() []string {
	return append([]string(nil), idx.keys...)
}
