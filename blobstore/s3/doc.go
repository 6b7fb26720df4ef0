// Package s3 provides S3-backed implementations of the blobstore.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(s3.NewFromConfig(cfg), "my-bucket", "snapshots/")
//
//	ds, err := hexpatch.OpenSnapshot(ctx, store, "city/patches.hxps")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads with CRC32C checksums for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//
// DDBCommitStore layers DynamoDB on top for atomically publishing a LATEST
// snapshot pointer, and ExpressStore targets S3 Express One Zone directory
// buckets for latency-sensitive readers.
package s3
