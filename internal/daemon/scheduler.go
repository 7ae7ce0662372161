package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

// Scheduler wraps gocron for the daemon's periodic full rebuild, a safety
// net against missed filesystem events.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodicRebuild registers a full rebuild every interval.
func (s *Scheduler) SchedulePeriodicRebuild(interval time.Duration, rebuild func(ctx context.Context)) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(rebuild, context.Background()),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule periodic rebuild: %w", err)
	}
	slog.Info("Scheduled periodic rebuild", slog.Duration("interval", interval))
	return nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		slog.Error("Scheduler shutdown failed", logfields.Error(err))
		return err
	}
	return nil
}
