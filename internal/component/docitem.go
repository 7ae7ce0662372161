package component

// DocItem is the per-component, per-locale summary placed into the
// navigation tree. It is produced by a component build and consumed by the
// navigation merger; this package does not retain references handed out.
type DocItem struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle,omitempty"`
	CategoryID string `yaml:"category,omitempty"`
	Order      int    `yaml:"order,omitempty"`
	Hidden     bool   `yaml:"hidden,omitempty"`
	Path       string `yaml:"path"`
}

// Clone returns a copy so callers can rewrite fields (e.g. lite-mode paths)
// without mutating the component's build state.
func (d *DocItem) Clone() *DocItem {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}
