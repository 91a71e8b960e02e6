package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRecord("created")
	m.ObserveRecord("created")
	m.ObserveRecord("error")
	m.ObserveJob("done", 150*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsReconciled.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsReconciled.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsFinished.WithLabelValues("done")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNop_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop()
		Nop()
	})
}
