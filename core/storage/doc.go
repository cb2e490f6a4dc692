// Package storage provides the object storage client used to archive run reports.
//
// It wraps the MinIO Go client behind a small Client interface, which works
// against both AWS S3 and self-hosted MinIO. The interface is mocked in
// core/storage/mocks for unit tests.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first use (see EnsureBucket).
//   - PutObject: Uploads a report.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
