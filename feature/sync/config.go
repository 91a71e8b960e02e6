package sync

import "time"

// Job store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for batch sync.
type Config struct {
	// Workers is the number of batches reconciled concurrently.
	Workers int `mapstructure:"workers" default:"4" validate:"min=1"`
	// QueueSize is the number of accepted batches waiting for a worker.
	QueueSize int `mapstructure:"queue_size" default:"256" validate:"min=0"`
	// RecordConcurrency is the number of records of one batch processed at once.
	RecordConcurrency int `mapstructure:"record_concurrency" default:"1" validate:"min=1"`
	// MaxBatch caps the records of one submission.
	MaxBatch int `mapstructure:"max_batch" default:"1000" validate:"min=1"`
	// JobBackend selects where job state lives (memory or redis).
	JobBackend string `mapstructure:"job_backend" default:"memory" validate:"oneof=memory redis"`
	// JobTTLMinutes is how long finished jobs stay queryable in the job store.
	JobTTLMinutes int `mapstructure:"job_ttl_minutes" default:"1440" validate:"min=1"`
	// ArchiveReports stores every finished report in object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
	// ReportPrefix is the object prefix of archived reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"sync-reports"`
}

// JobTTL returns the job retention as a duration.
func (c Config) JobTTL() time.Duration {
	return time.Duration(c.JobTTLMinutes) * time.Minute
}
