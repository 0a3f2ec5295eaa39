// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that exported command scripts can be archived
// per stream and fetched again later. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so the sync feature can be
// tested with the mock in core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: Creates the script bucket on first use.
//   - PutText / GetText: Upload and download a script body.
//   - ListKeys: Lists archived scripts below a stream prefix.
//   - ScriptKey: Builds the <stream>/<pass>.gwa object key.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	_, err = storage.PutText(ctx, client, cfg.Storage.Bucket, storage.ScriptKey(stream, passID), script)
package storage
