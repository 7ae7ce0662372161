// Package daemon runs watch mode: the change aggregator, the scoped
// rebuild watcher, an optional periodic full rebuild, and an admin HTTP
// server with metrics and livereload.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/compdocs/internal/builder"
	"git.home.luguber.info/inful/compdocs/internal/component"
	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/history"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
	"git.home.luguber.info/inful/compdocs/internal/metrics"
	"git.home.luguber.info/inful/compdocs/internal/watch"
)

// Daemon owns the watch-mode runtime for one library.
type Daemon struct {
	cfg      config.SiteConfig
	builder  *builder.Builder
	recorder *metrics.PrometheusRecorder
	registry *prom.Registry
	hub      *LiveReloadHub
	store    *history.Store
}

// New wires up a daemon around an already-discovered builder.
func New(cfg config.SiteConfig, b *builder.Builder) (*Daemon, error) {
	reg := prom.NewRegistry()
	d := &Daemon{
		cfg:      cfg,
		builder:  b,
		recorder: metrics.NewPrometheusRecorder(reg),
		registry: reg,
		hub:      NewLiveReloadHub(),
	}
	b.WithRecorder(d.recorder)

	if cfg.Daemon.HistoryPath != "" {
		store, err := history.Open(cfg.Daemon.HistoryPath)
		if err != nil {
			return nil, err
		}
		d.store = store
	}

	d.subscribeReporting()
	return d, nil
}

// subscribeReporting attaches the daemon's logging observers to the build
// lifecycle hooks.
func (d *Daemon) subscribeReporting() {
	d.builder.OnHook(builder.HookBatchStart, func(evt builder.HookEvent) {
		slog.Info("Build batch starting",
			logfields.Library(d.builder.Library().Name),
			logfields.Count(len(evt.Components)))
	})
	d.builder.OnHook(builder.HookUnitStart, func(evt builder.HookEvent) {
		slog.Debug("Building component", logfields.Component(evt.Component.Name()))
	})
	d.builder.OnHook(builder.HookUnitEnd, func(evt builder.HookEvent) {
		slog.Debug("Component build succeeded", logfields.Component(evt.Component.Name()))
	})
	d.builder.OnHook(builder.HookBatchEnd, func(evt builder.HookEvent) {
		slog.Info("Build batch succeeded",
			logfields.Library(d.builder.Library().Name),
			logfields.Count(len(evt.Components)))
	})
}

// Run builds everything once, then watches for changes until ctx is
// canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.builder.Build(ctx); err != nil {
		return err
	}
	if err := d.builder.Emit(ctx); err != nil {
		return err
	}

	watcher := watch.NewWatcher(d.builder).WithRecorder(d.recorder)
	watcher.OnBatchBuilt(func(batch watch.Batch, comps []*component.Component) {
		if err := d.builder.Emit(ctx); err != nil {
			slog.Error("Emit after rebuild failed", logfields.Error(err))
			return
		}
		d.recordBatch(ctx, batch.ID, "watch", len(comps), nil, 0)
		d.hub.Broadcast(batch.ID)
	})

	aggregator, err := watch.NewAggregator(watcher.Dirs(), watch.AggregatorConfig{
		QuietWindow: d.cfg.Watch.QuietWindow,
		MaxDelay:    d.cfg.Watch.MaxDelay,
	})
	if err != nil {
		return err
	}

	var scheduler *Scheduler
	if d.cfg.Daemon.RebuildInterval > 0 {
		scheduler, err = NewScheduler()
		if err != nil {
			return err
		}
		err = scheduler.SchedulePeriodicRebuild(d.cfg.Daemon.RebuildInterval, func(jobCtx context.Context) {
			start := time.Now()
			buildErr := d.builder.Build(jobCtx)
			if buildErr == nil {
				buildErr = d.builder.Emit(jobCtx)
			}
			d.recordBatch(jobCtx, "", "scheduled", d.builder.Index().Len(), buildErr, time.Since(start))
			if buildErr != nil {
				slog.Error("Scheduled rebuild failed", logfields.Error(buildErr))
			}
		})
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { _ = scheduler.Stop() }()
	}

	srv := newHTTPServer(d.cfg.Daemon.Addr, d.registry, d.hub, d.store)
	go func() {
		slog.Info("Admin server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Admin server failed", logfields.Error(err))
		}
	}()
	defer shutdownHTTPServer(srv)
	defer d.hub.Close()
	if d.store != nil {
		defer func() { _ = d.store.Close() }()
	}

	go aggregator.Run(ctx)
	watcher.Run(ctx, aggregator.Batches())
	return nil
}

func (d *Daemon) recordBatch(ctx context.Context, id, trigger string, count int, buildErr error, duration time.Duration) {
	if d.store == nil {
		return
	}
	rec := history.BatchRecord{
		ID:         id,
		Trigger:    trigger,
		Components: count,
		Outcome:    "success",
		Duration:   duration,
	}
	if buildErr != nil {
		rec.Outcome = "failed"
		rec.Error = buildErr.Error()
	}
	if err := d.store.Append(ctx, rec); err != nil {
		slog.Error("Failed to record build history", logfields.Error(err))
	}
}
