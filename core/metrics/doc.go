// Package metrics defines the Prometheus collectors for batch synchronisation:
// per-record outcomes, degraded encryptions, job submissions, terminal job states
// and job durations. Collectors are registered against an explicit registerer so
// tests and one-shot CLI runs do not collide on the default registry.
package metrics
