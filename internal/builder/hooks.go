package builder

import (
	"sync"

	"git.home.luguber.info/inful/compdocs/internal/component"
)

// HookKind enumerates the build lifecycle events observers can attach to.
type HookKind int

const (
	HookBatchStart HookKind = iota // before a batch, with the full batch
	HookUnitStart                  // before one component's build
	HookUnitEnd                    // after one component's successful build
	HookBatchEnd                   // after a fully successful batch
)

// HookEvent carries the lifecycle notification payload. Components holds
// the batch for batch-scoped events; Component is set for unit-scoped
// events and nil otherwise.
type HookEvent struct {
	Kind       HookKind
	Components []*component.Component
	Component  *component.Component
}

// HookFunc observes a lifecycle event. Hooks are observers, not filters:
// they return nothing and cannot alter the build.
type HookFunc func(evt HookEvent)

// hookSet is an ordered observer list per event kind. Publishing is
// synchronous and in subscription order so hook side effects (logging,
// metrics) are never interleaved across components.
type hookSet struct {
	mu        sync.RWMutex
	listeners map[HookKind][]HookFunc
}

func newHookSet() *hookSet {
	return &hookSet{listeners: make(map[HookKind][]HookFunc)}
}

func (h *hookSet) subscribe(kind HookKind, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[kind] = append(h.listeners[kind], fn)
}

func (h *hookSet) publish(evt HookEvent) {
	h.mu.RLock()
	fns := h.listeners[evt.Kind]
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(evt)
	}
}
