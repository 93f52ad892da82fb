// Package metrics exposes Prometheus instrumentation for action execution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"winmate/pkg/domain"
)

// ActionMetrics records execution counts and durations per action. It
// implements executor.Metrics.
type ActionMetrics struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates ActionMetrics and registers the collectors on reg.
func New(reg prometheus.Registerer) *ActionMetrics {
	m := &ActionMetrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winmate",
			Name:      "action_executions_total",
			Help:      "Number of action executions by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "winmate",
			Name:      "action_duration_seconds",
			Help:      "Action execution duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"action"}),
	}
	reg.MustRegister(m.executions, m.duration)
	return m
}

// ObserveExecution implements executor.Metrics.
func (m *ActionMetrics) ObserveExecution(actionID string, outcome domain.Outcome, duration time.Duration) {
	m.executions.WithLabelValues(actionID, string(outcome)).Inc()
	m.duration.WithLabelValues(actionID).Observe(duration.Seconds())
}
