// Package builder orchestrates component builds: full batches, the partial
// batches driven by the change watcher, and the artifact emit phase.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
	"git.home.luguber.info/inful/compdocs/internal/metrics"
	"git.home.luguber.info/inful/compdocs/internal/registry"
)

// Builder owns the component index for one library and runs builds over
// it. Components are built strictly sequentially so lifecycle hooks
// observe a deterministic one-at-a-time sequence.
type Builder struct {
	lib      config.Library
	index    *registry.Index
	targets  component.EmitTargets
	hooks    *hookSet
	recorder metrics.Recorder
}

// New creates a builder over a discovered index.
func New(lib config.Library, index *registry.Index, targets component.EmitTargets) *Builder {
	return &Builder{
		lib:      lib,
		index:    index,
		targets:  targets,
		hooks:    newHookSet(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder injects a metrics recorder (defaults to noop).
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// Library returns the library this builder serves.
func (b *Builder) Library() config.Library { return b.lib }

// Index returns the component index. The builder only ever iterates it;
// discovery is the sole writer.
func (b *Builder) Index() *registry.Index { return b.index }

// OnHook subscribes an observer to a lifecycle event kind.
func (b *Builder) OnHook(kind HookKind, fn HookFunc) {
	b.hooks.subscribe(kind, fn)
}

// Build builds every component in the index, in index insertion order.
func (b *Builder) Build(ctx context.Context) error {
	return b.BuildComponents(ctx, b.index.Components())
}

// BuildComponents builds the given subset sequentially. Hook order is
// BatchStart, then per component UnitStart/UnitEnd, then BatchEnd after a
// fully successful batch. The first build error aborts the remainder and
// propagates; already-built components keep their state.
func (b *Builder) BuildComponents(ctx context.Context, comps []*component.Component) error {
	start := time.Now()
	b.hooks.publish(HookEvent{Kind: HookBatchStart, Components: comps})

	for _, c := range comps {
		b.hooks.publish(HookEvent{Kind: HookUnitStart, Components: comps, Component: c})

		unitStart := time.Now()
		if err := c.Build(ctx); err != nil {
			b.recorder.IncBatchOutcome(metrics.OutcomeFailed)
			return fmt.Errorf("build component %s: %w", c.Name(), err)
		}
		b.recorder.ObserveComponentBuildDuration(c.Name(), time.Since(unitStart))

		b.hooks.publish(HookEvent{Kind: HookUnitEnd, Components: comps, Component: c})
	}

	b.hooks.publish(HookEvent{Kind: HookBatchEnd, Components: comps})
	b.recorder.ObserveBatchDuration(time.Since(start))
	b.recorder.IncBatchOutcome(metrics.OutcomeSuccess)

	slog.Info("Build batch finished",
		logfields.Library(b.lib.Name),
		logfields.Count(len(comps)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// Emit writes artifacts for every component in the index, sequentially and
// regardless of when each was last built. No hooks fire around this phase.
func (b *Builder) Emit(ctx context.Context) error {
	for _, c := range b.index.Components() {
		if err := c.Emit(ctx, b.targets); err != nil {
			return fmt.Errorf("emit component %s: %w", c.Name(), err)
		}
	}
	slog.Info("Artifacts emitted",
		logfields.Library(b.lib.Name), logfields.Count(b.index.Len()))
	return nil
}
