// Package jobs runs work asynchronously and keeps pollable job state.
//
// A Queue accepts a RunFunc, records a pending Job in a Store, and returns the job
// id immediately. A fixed pool of workers, separate from request handling, moves
// each job through pending → running → done | failed. A job fails only when its
// RunFunc returns an error (or panics); once terminal, stores refuse further
// writes, so results never change after they are published.
//
// Two stores are provided:
//   - MemoryStore: process-local, RWMutex guarded, returns deep copies.
//   - RedisStore: shared between instances, optimistic WATCH transactions.
//
// # Usage
//
//	q := jobs.NewQueue[Outcome](jobs.NewMemoryStore[Outcome](time.Hour), jobs.Options{Workers: 4, QueueSize: 64}, log)
//	id, err := q.Submit(ctx, actor, func(ctx context.Context, job jobs.Job[Outcome]) ([]Outcome, error) { ... })
//	job, err := q.Status(ctx, id)
package jobs
