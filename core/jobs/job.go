package jobs

import (
	"context"
	"errors"
	"time"
)

// State is the lifecycle state of a job.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var (
	// ErrNotFound is returned for unknown job ids.
	ErrNotFound = errors.New("job not found")
	// ErrFinalized is returned when writing to a job that already reached a terminal state.
	ErrFinalized = errors.New("job already finalized")
	// ErrDuplicateID is returned when a job id is already taken.
	ErrDuplicateID = errors.New("job id already exists")
	// ErrQueueFull is returned when the queue cannot take more work.
	ErrQueueFull = errors.New("job queue is full")
	// ErrQueueClosed is returned after Close.
	ErrQueueClosed = errors.New("job queue is closed")
)

// Job is a unit of asynchronous work and its outcome.
type Job[T any] struct {
	ID          string     `json:"job_id"`
	State       State      `json:"state"`
	Actor       string     `json:"actor"`
	Results     []T        `json:"results"`
	Error       string     `json:"error,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with j.
func (j Job[T]) Clone() Job[T] {
	out := j
	if j.Results != nil {
		out.Results = make([]T, len(j.Results))
		copy(out.Results, j.Results)
	}
	if j.StartedAt != nil {
		t := *j.StartedAt
		out.StartedAt = &t
	}
	if j.FinishedAt != nil {
		t := *j.FinishedAt
		out.FinishedAt = &t
	}
	return out
}

// RunFunc executes a job. A returned error moves the job to failed; results are
// only kept when it succeeds.
type RunFunc[T any] func(ctx context.Context, job Job[T]) ([]T, error)

// FinishFunc observes a job that reached a terminal state.
type FinishFunc[T any] func(ctx context.Context, job Job[T])

// Store persists job state. Implementations must return copies and must refuse
// to modify a job whose stored state is terminal.
type Store[T any] interface {
	Create(ctx context.Context, job Job[T]) error
	Save(ctx context.Context, job Job[T]) error
	Get(ctx context.Context, id string) (Job[T], error)
}
