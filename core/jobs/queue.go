package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a Queue.
type Options struct {
	// Workers is the number of jobs executed concurrently.
	Workers int
	// QueueSize is the number of accepted jobs that may wait for a worker.
	QueueSize int
}

type task[T any] struct {
	id  string
	run RunFunc[T]
}

// Queue runs submitted jobs on a fixed worker pool and records their state in
// a Store. Submit never waits for a job to execute.
type Queue[T any] struct {
	store  Store[T]
	logger *zap.Logger
	tasks  chan task[T]

	mu     sync.RWMutex
	closed bool
	hooks  []FinishFunc[T]

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewQueue creates a queue and starts its workers.
func NewQueue[T any](store Store[T], opts Options, logger *zap.Logger) *Queue[T] {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue[T]{
		store:  store,
		logger: logger,
		tasks:  make(chan task[T], opts.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	q.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go q.worker()
	}
	return q
}

// OnFinish registers a hook called after each job reaches a terminal state.
func (q *Queue[T]) OnFinish(fn FinishFunc[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.hooks = append(q.hooks, fn)
}

// Submit records a pending job and hands it to the worker pool.
func (q *Queue[T]) Submit(ctx context.Context, actor string, run RunFunc[T]) (string, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return "", ErrQueueClosed
	}

	job := Job[T]{
		ID:          uuid.NewString(),
		State:       StatePending,
		Actor:       actor,
		SubmittedAt: time.Now().UTC(),
	}
	if err := q.store.Create(ctx, job); err != nil {
		return "", fmt.Errorf("failed to record job: %w", err)
	}

	select {
	case q.tasks <- task[T]{id: job.ID, run: run}:
		return job.ID, nil
	default:
		job.State = StateFailed
		job.Error = ErrQueueFull.Error()
		now := time.Now().UTC()
		job.FinishedAt = &now
		if err := q.store.Save(ctx, job); err != nil {
			q.logger.Warn("Failed to mark rejected job", zap.String("job_id", job.ID), zap.Error(err))
			return "", ErrQueueFull
		}
		// q.mu is already read-locked here.
		for _, hook := range q.hooks {
			hook(ctx, job.Clone())
		}
		return "", ErrQueueFull
	}
}

// Status returns a snapshot of the job.
func (q *Queue[T]) Status(ctx context.Context, id string) (Job[T], error) {
	return q.store.Get(ctx, id)
}

// Close stops accepting jobs and waits for queued ones to finish. If ctx expires
// first, running jobs are cancelled and ctx.Err() is returned.
func (q *Queue[T]) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}

func (q *Queue[T]) worker() {
	defer q.wg.Done()
	for t := range q.tasks {
		q.execute(t)
	}
}

func (q *Queue[T]) execute(t task[T]) {
	l := q.logger.With(zap.String("job_id", t.id))

	job, err := q.store.Get(q.ctx, t.id)
	if err != nil {
		l.Error("Failed to load queued job", zap.Error(err))
		return
	}

	started := time.Now().UTC()
	job.State = StateRunning
	job.StartedAt = &started
	if err := q.store.Save(q.ctx, job); err != nil {
		l.Error("Failed to mark job running", zap.Error(err))
		return
	}

	results, runErr := q.safeRun(t.run, job)

	finished := time.Now().UTC()
	job.FinishedAt = &finished
	if runErr != nil {
		job.State = StateFailed
		job.Error = runErr.Error()
		job.Results = nil
		l.Error("Job failed", zap.Error(runErr), zap.Duration("took", finished.Sub(started)))
	} else {
		job.State = StateDone
		job.Results = results
		l.Info("Job done", zap.Int("results", len(results)), zap.Duration("took", finished.Sub(started)))
	}

	if err := q.store.Save(q.ctx, job); err != nil {
		l.Error("Failed to record job outcome", zap.Error(err))
		return
	}

	q.mu.RLock()
	hooks := q.hooks
	q.mu.RUnlock()
	for _, hook := range hooks {
		hook(q.ctx, job.Clone())
	}
}

func (q *Queue[T]) safeRun(run RunFunc[T], job Job[T]) (results []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return run(q.ctx, job.Clone())
}
