package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"winmate/pkg/domain"
)

func TestObserveExecution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveExecution("cleanup_temp", domain.OutcomeSuccess, 120*time.Millisecond)
	m.ObserveExecution("cleanup_temp", domain.OutcomeSuccess, 80*time.Millisecond)
	m.ObserveExecution("network_reset", domain.OutcomeFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.executions.WithLabelValues("cleanup_temp", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.executions.WithLabelValues("network_reset", "failed")))

	count := testutil.CollectAndCount(m.duration, "winmate_action_duration_seconds")
	assert.Equal(t, 2, count, "one histogram series per action")
}
