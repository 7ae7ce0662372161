package watch

// Op classifies a filesystem change for consumers that care (the resolver
// does not: every op triggers the same scoped rebuild).
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Change is one coalesced filesystem event.
type Change struct {
	Path string
	Op   Op
}

// Batch is a debounced, ordered group of changes delivered together.
type Batch struct {
	ID     string
	Events []Change
}
