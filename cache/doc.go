// Package cache provides LRU caching for immutable block data.
//
// # Block Cache (RAM)
//
// The ShardedLRUBlockCache stores recently accessed blocks of snapshot
// blobs. It uses 64-way sharding so concurrent patch reads rarely contend
// on a lock, and can report usage to a resource.Controller.
//
// # Disk Cache (L2)
//
// For cloud storage backends, DiskBlockCache provides a persistent L2
// cache:
//   - Async writes to keep the read path unblocked
//   - LRU eviction with configurable size limits
//   - Rebuilds its index from disk on startup
package cache
