// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the bucket store
// backend and the health check can be tested against core/storage/mocks. Both AWS S3
// and self-hosted MinIO work.
//
// # Operations
//
//   - BucketExists / EnsureBucket: verify or create the target bucket.
//   - PutObject / ReadObject: write and read whole JSON documents.
//   - RemoveObject: drop a document that did not exist before a failed write.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
