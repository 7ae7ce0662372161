// Package watch converts raw filesystem events for many component
// directories into minimal scoped rebuilds: an aggregator debounces events
// into batches, a resolver maps changed paths to owning components, and
// the watcher drives partial builds from the result.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/compdocs/internal/hostfs"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

// AggregatorConfig tunes batch coalescing.
type AggregatorConfig struct {
	// QuietWindow is how long the event stream must stay silent before a
	// pending batch is flushed.
	QuietWindow time.Duration
	// MaxDelay caps how long a busy stream can postpone a flush.
	MaxDelay time.Duration
}

// Aggregator subscribes to filesystem events for a fixed directory list
// and emits debounced change batches. Directories that do not exist at
// subscribe time are skipped with a debug log, mirroring discovery's
// missing-path policy.
type Aggregator struct {
	watcher *fsnotify.Watcher
	cfg     AggregatorConfig
	out     chan Batch

	mu      sync.Mutex
	pending []Change
	first   time.Time
}

// NewAggregator creates an aggregator watching dirs. The returned batch
// channel is closed when Run exits.
func NewAggregator(dirs []string, cfg AggregatorConfig) (*Aggregator, error) {
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = 300 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 2 * time.Second
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := 0
	for _, dir := range dirs {
		if !hostfs.PathExists(dir) {
			slog.Debug("Watch directory not found, skipping", logfields.Path(dir))
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		watched++
	}
	slog.Info("Watching directories", logfields.Count(watched))

	return &Aggregator{
		watcher: watcher,
		cfg:     cfg,
		out:     make(chan Batch, 1),
	}, nil
}

// Batches returns the channel aggregated batches are delivered on.
func (a *Aggregator) Batches() <-chan Batch { return a.out }

// Run pumps fsnotify events into debounced batches until ctx is canceled.
// The fsnotify watcher and the batch channel are closed on exit.
func (a *Aggregator) Run(ctx context.Context) {
	defer close(a.out)
	defer a.watcher.Close()

	flushTimer := time.NewTimer(time.Hour)
	stopTimer(flushTimer)
	defer flushTimer.Stop()

	var flushC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-a.watcher.Events:
			if !ok {
				a.flush()
				return
			}
			op, relevant := mapOp(event.Op)
			if !relevant {
				continue
			}

			a.mu.Lock()
			if len(a.pending) == 0 {
				a.first = time.Now()
			}
			a.pending = append(a.pending, Change{Path: event.Name, Op: op})
			elapsed := time.Since(a.first)
			a.mu.Unlock()

			delay := a.cfg.QuietWindow
			if remaining := a.cfg.MaxDelay - elapsed; remaining < delay {
				delay = remaining
			}
			if delay < 0 {
				delay = 0
			}
			stopTimer(flushTimer)
			flushTimer.Reset(delay)
			flushC = flushTimer.C

		case <-flushC:
			flushC = nil
			a.flush()

		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (a *Aggregator) flush() {
	a.mu.Lock()
	events := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(events) == 0 {
		return
	}

	batch := Batch{ID: uuid.NewString(), Events: events}
	slog.Debug("Change batch aggregated",
		logfields.BatchID(batch.ID), logfields.Count(len(events)))
	a.out <- batch
}

func mapOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		// Chmod and friends are filesystem noise.
		return "", false
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
