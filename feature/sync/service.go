package sync

import (
	"context"
	"errors"
	"time"

	"farmer-registry/core/jobs"
	"farmer-registry/core/logger"
	"farmer-registry/core/metrics"
	"farmer-registry/feature/farmer/models"
	"farmer-registry/feature/sync/reconcile"

	"go.uber.org/zap"
)

// Outcome is the per-record report entry of a sync job.
type Outcome = reconcile.Outcome

// Job is a sync job with its report.
type Job = jobs.Job[Outcome]

// Engine reconciles one batch.
type Engine interface {
	Reconcile(ctx context.Context, batch []models.IncomingRecord, actor string) ([]Outcome, error)
}

// Service accepts sync batches and reports on them.
type Service struct {
	queue   *jobs.Queue[Outcome]
	engine  Engine
	archive *Archive
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new sync service. archive may be nil.
func NewService(queue *jobs.Queue[Outcome], engine Engine, archive *Archive, m *metrics.Metrics, logger *zap.Logger) *Service {
	s := &Service{
		queue:   queue,
		engine:  engine,
		archive: archive,
		metrics: m,
		logger:  logger,
	}

	queue.OnFinish(s.observe)
	if archive != nil {
		queue.OnFinish(archive.Hook())
	}
	return s
}

// Submit queues the batch and returns the job id without waiting for it.
func (s *Service) Submit(ctx context.Context, records []models.IncomingRecord, actor string) (string, error) {
	batch := make([]models.IncomingRecord, len(records))
	copy(batch, records)

	id, err := s.queue.Submit(ctx, actor, func(ctx context.Context, job Job) ([]Outcome, error) {
		l := logger.WithJob(s.logger, job.ID, actor)
		l.Info("Reconciling batch", zap.Int("records", len(batch)))
		return s.engine.Reconcile(ctx, batch, actor)
	})
	if err != nil {
		return "", err
	}

	s.metrics.JobsSubmitted.Inc()
	s.logger.Info("Sync batch queued", zap.String("job_id", id), zap.String("actor", actor), zap.Int("records", len(batch)))
	return id, nil
}

// Status returns the job, falling back to the archive for jobs the store no
// longer holds.
func (s *Service) Status(ctx context.Context, jobID string) (Job, error) {
	job, err := s.queue.Status(ctx, jobID)
	if errors.Is(err, jobs.ErrNotFound) && s.archive != nil {
		return s.archive.Load(ctx, jobID)
	}
	return job, err
}

// Run reconciles the batch synchronously, bypassing the queue.
func (s *Service) Run(ctx context.Context, records []models.IncomingRecord, actor string) ([]Outcome, error) {
	return s.engine.Reconcile(ctx, records, actor)
}

func (s *Service) observe(_ context.Context, job Job) {
	var took time.Duration
	if job.StartedAt != nil && job.FinishedAt != nil {
		took = job.FinishedAt.Sub(*job.StartedAt)
	}
	s.metrics.ObserveJob(string(job.State), took)
}
