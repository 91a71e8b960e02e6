package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"farmer-registry/core/jobs"
	"farmer-registry/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archive keeps the report of every finished job in object storage, so reports
// outlive the job store.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewArchive creates an archive writing under bucket/prefix.
func NewArchive(client storage.Client, bucket, prefix string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Key returns the object name of a job report.
func (a *Archive) Key(jobID string) string {
	return path.Join(a.prefix, jobID+".json")
}

// Store uploads the job report.
func (a *Archive) Store(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, a.Key(job.ID), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive job %s: %w", job.ID, err)
	}
	return nil
}

// Load reads a job report back. Missing reports return jobs.ErrNotFound.
func (a *Archive) Load(ctx context.Context, jobID string) (Job, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.Key(jobID), minio.GetObjectOptions{})
	if err != nil {
		return Job{}, a.loadErr(jobID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return Job{}, a.loadErr(jobID, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("failed to decode archived job %s: %w", jobID, err)
	}
	return job, nil
}

func (a *Archive) loadErr(jobID string, err error) error {
	if storage.IsNotFound(err) {
		return jobs.ErrNotFound
	}
	return fmt.Errorf("failed to read archived job %s: %w", jobID, err)
}

// Hook returns a queue finish hook archiving each terminal job.
func (a *Archive) Hook() jobs.FinishFunc[Outcome] {
	return func(ctx context.Context, job Job) {
		if err := a.Store(ctx, job); err != nil {
			a.logger.Warn("Failed to archive sync report", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}
