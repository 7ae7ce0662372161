package metrics

import "time"

// OutcomeLabel enumerates batch outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for build and watch metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder allows optional injection without nil checks at call sites.
type Recorder interface {
	ObserveComponentBuildDuration(name string, d time.Duration)
	ObserveBatchDuration(d time.Duration)
	IncBatchOutcome(outcome OutcomeLabel)
	IncWatchBatches()
	SetWatchedDirs(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveComponentBuildDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBatchDuration(time.Duration)                  {}
func (NoopRecorder) IncBatchOutcome(OutcomeLabel)                        {}
func (NoopRecorder) IncWatchBatches()                                    {}
func (NoopRecorder) SetWatchedDirs(int)                                  {}
