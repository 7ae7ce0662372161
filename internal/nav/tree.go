// Package nav builds the locale-aware navigation tree: per-locale resolved
// category clones and the merge of component doc items into channels.
package nav

// Item is one navigation node. Category nodes carry a non-nil Items list
// (empty until doc items are merged in); doc item nodes are leaves.
type Item struct {
	ID       string  `yaml:"id" json:"id"`
	Title    string  `yaml:"title" json:"title"`
	Subtitle string  `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Path     string  `yaml:"path,omitempty" json:"path,omitempty"`
	Order    int     `yaml:"order,omitempty" json:"order,omitempty"`
	Items    []*Item `yaml:"items,omitempty" json:"items,omitempty"`
}

// IsCategory reports whether the node is a category rather than a bare
// doc item.
func (it *Item) IsCategory() bool { return it.Items != nil }

// Clone deep-copies the item and its subtree.
func (it *Item) Clone() *Item {
	cp := *it
	if it.Items != nil {
		cp.Items = make([]*Item, 0, len(it.Items))
		for _, child := range it.Items {
			cp.Items = append(cp.Items, child.Clone())
		}
	}
	return &cp
}

// Channel is the top-level navigation node for one library within the
// site-wide navigation list.
type Channel struct {
	ID    string  `yaml:"id" json:"id"`
	Lib   string  `yaml:"lib" json:"lib"`
	Path  string  `yaml:"path" json:"path"`
	Title string  `yaml:"title" json:"title"`
	Items []*Item `yaml:"items" json:"items"`
}

// Tree is the site-wide navigation list the merger works against.
type Tree struct {
	Channels []*Channel `yaml:"channels" json:"channels"`
}

// FindChannel returns the channel whose Lib matches name, or nil.
func (t *Tree) FindChannel(name string) *Channel {
	for _, ch := range t.Channels {
		if ch.Lib == name {
			return ch
		}
	}
	return nil
}
