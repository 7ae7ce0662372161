package watch

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/compdocs/internal/builder"
	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
	"git.home.luguber.info/inful/compdocs/internal/metrics"
)

// BatchBuilt is invoked after a batch's scoped rebuild succeeds, with the
// components that were rebuilt. Used by the daemon for livereload pushes.
type BatchBuilt func(batch Batch, comps []*component.Component)

// Watcher resolves aggregated change batches to owning components and
// triggers scoped partial builds. The watch list and resolver are computed
// once from the index and reused for the watcher's lifetime.
type Watcher struct {
	builder  *builder.Builder
	resolver *Resolver
	dirs     []string
	recorder metrics.Recorder
	onBuilt  BatchBuilt
}

// NewWatcher creates a watcher over the builder's component index.
func NewWatcher(b *builder.Builder) *Watcher {
	comps := b.Index().Components()

	var dirs []string
	for _, c := range comps {
		dirs = append(dirs, c.WatchDirs()...)
	}

	return &Watcher{
		builder:  b,
		resolver: NewResolver(comps),
		dirs:     dirs,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder injects a metrics recorder (defaults to noop).
func (w *Watcher) WithRecorder(r metrics.Recorder) *Watcher {
	if r != nil {
		w.recorder = r
	}
	return w
}

// OnBatchBuilt registers a callback fired after each successful scoped
// rebuild.
func (w *Watcher) OnBatchBuilt(fn BatchBuilt) { w.onBuilt = fn }

// Dirs returns the full watched-directory list: the doc, api and examples
// subdirectories of every component.
func (w *Watcher) Dirs() []string { return w.dirs }

// Run consumes batches until the channel closes or ctx is canceled. A
// failed scoped rebuild is logged and the loop continues: failures are
// scoped to the batch, never to the subscription.
func (w *Watcher) Run(ctx context.Context, batches <-chan Batch) {
	w.recorder.SetWatchedDirs(len(w.dirs))

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			w.handleBatch(ctx, batch)
		}
	}
}

// HandleBatch resolves one batch and triggers the scoped rebuild. Exposed
// for callers that drive batches themselves.
func (w *Watcher) HandleBatch(ctx context.Context, batch Batch) error {
	comps := w.ResolveBatch(batch)
	if len(comps) == 0 {
		return nil
	}

	slog.Info("Rebuilding changed components",
		logfields.BatchID(batch.ID), logfields.Count(len(comps)))
	if err := w.builder.BuildComponents(ctx, comps); err != nil {
		return err
	}
	if w.onBuilt != nil {
		w.onBuilt(batch, comps)
	}
	return nil
}

func (w *Watcher) handleBatch(ctx context.Context, batch Batch) {
	w.recorder.IncWatchBatches()
	if err := w.HandleBatch(ctx, batch); err != nil {
		slog.Error("Scoped rebuild failed",
			logfields.BatchID(batch.ID), logfields.Error(err))
	}
}

// ResolveBatch maps a batch's events to the deduplicated set of affected
// components, in first-seen batch order. Paths owned by no component are
// dropped: unrelated filesystem noise is expected, not an error.
func (w *Watcher) ResolveBatch(batch Batch) []*component.Component {
	seen := make(map[string]struct{})
	var comps []*component.Component
	for _, evt := range batch.Events {
		c := w.resolver.Resolve(evt.Path)
		if c == nil {
			continue
		}
		if _, dup := seen[c.Dir()]; dup {
			continue
		}
		seen[c.Dir()] = struct{}{}
		comps = append(comps, c)
	}
	return comps
}
