package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the sync pipeline.
type Metrics struct {
	RecordsReconciled  *prometheus.CounterVec
	EncryptionDegraded prometheus.Counter
	JobsFinished       *prometheus.CounterVec
	JobsSubmitted      prometheus.Counter
	JobDuration        prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsReconciled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farmer_sync_records_total",
			Help: "Reconciled records by outcome status",
		}, []string{"status"}),
		EncryptionDegraded: factory.NewCounter(prometheus.CounterOpts{
			Name: "farmer_sync_encryption_degraded_total",
			Help: "Records persisted without their NRC because encryption failed",
		}),
		JobsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farmer_sync_jobs_total",
			Help: "Finished sync jobs by terminal state",
		}, []string{"state"}),
		JobsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "farmer_sync_jobs_submitted_total",
			Help: "Sync jobs accepted into the queue",
		}),
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "farmer_sync_job_duration_seconds",
			Help:    "Wall time from job start to terminal state",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
	}
}

// Nop returns collectors registered nowhere, for tests and CLI runs.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveRecord counts one reconciled record.
func (m *Metrics) ObserveRecord(status string) {
	m.RecordsReconciled.WithLabelValues(status).Inc()
}

// ObserveJob records a finished job.
func (m *Metrics) ObserveJob(state string, took time.Duration) {
	m.JobsFinished.WithLabelValues(state).Inc()
	m.JobDuration.Observe(took.Seconds())
}
