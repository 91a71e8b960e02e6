// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface covering the
// operations the registry needs to archive sync reports: bucket checks, uploads,
// and downloads. Both AWS S3 and self-hosted MinIO are supported.
//
// The Client interface keeps storage interactions mockable in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
