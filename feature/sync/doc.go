// Package sync exposes batch synchronisation of offline registrations.
//
// A batch is accepted over HTTP, queued as a job and reconciled in the background
// by the reconcile package. Clients poll the job for its per-record report.
// Finished reports are archived to object storage when an Archive is configured,
// and status lookups fall back to the archive once the job store forgets a job.
package sync
