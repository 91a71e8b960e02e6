package jobs

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps jobs in process memory. Finished jobs older than ttl are
// pruned when new jobs are created; a zero ttl keeps them forever.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	jobs map[string]Job[T]
	ttl  time.Duration
}

// NewMemoryStore creates an empty store.
func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{jobs: make(map[string]Job[T]), ttl: ttl}
}

func (s *MemoryStore[T]) Create(ctx context.Context, job Job[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	if _, exists := s.jobs[job.ID]; exists {
		return ErrDuplicateID
	}
	s.jobs[job.ID] = job.Clone()
	return nil
}

func (s *MemoryStore[T]) Save(ctx context.Context, job Job[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.jobs[job.ID]
	if !exists {
		return ErrNotFound
	}
	if current.State.Terminal() {
		return ErrFinalized
	}
	s.jobs[job.ID] = job.Clone()
	return nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, id string) (Job[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return Job[T]{}, ErrNotFound
	}
	return job.Clone(), nil
}

func (s *MemoryStore[T]) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, job := range s.jobs {
		if job.FinishedAt != nil && now.Sub(*job.FinishedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
