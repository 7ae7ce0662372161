package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	componentDuration *prom.HistogramVec
	batchDuration     prom.Histogram
	batchOutcome      *prom.CounterVec
	watchBatches      prom.Counter
	watchedDirs       prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		componentDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "compdocs",
			Name:      "component_build_duration_seconds",
			Help:      "Duration of individual component builds",
			Buckets:   prom.DefBuckets,
		}, []string{"component"}),
		batchDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "compdocs",
			Name:      "batch_duration_seconds",
			Help:      "Total build batch duration",
			Buckets:   prom.DefBuckets,
		}),
		batchOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "compdocs",
			Name:      "batch_outcomes_total",
			Help:      "Build batch outcomes by result",
		}, []string{"outcome"}),
		watchBatches: prom.NewCounter(prom.CounterOpts{
			Namespace: "compdocs",
			Name:      "watch_batches_total",
			Help:      "Aggregated change batches processed by the watcher",
		}),
		watchedDirs: prom.NewGauge(prom.GaugeOpts{
			Namespace: "compdocs",
			Name:      "watched_directories",
			Help:      "Number of directories under filesystem watch",
		}),
	}
	reg.MustRegister(pr.componentDuration, pr.batchDuration, pr.batchOutcome, pr.watchBatches, pr.watchedDirs)
	return pr
}

func (pr *PrometheusRecorder) ObserveComponentBuildDuration(name string, d time.Duration) {
	pr.componentDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveBatchDuration(d time.Duration) {
	pr.batchDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncBatchOutcome(outcome OutcomeLabel) {
	pr.batchOutcome.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) IncWatchBatches() { pr.watchBatches.Inc() }

func (pr *PrometheusRecorder) SetWatchedDirs(n int) { pr.watchedDirs.Set(float64(n)) }
