// Package snapshot implements the immutable on-disk format for patch
// datasets.
//
// # Overview
//
// A snapshot stores the materialized neighborhood patches of a dataset in
// slot order, together with the center cell IDs, so datasets can be exported
// once and served many times without rebuilding. Patch blocks are
// individually compressed, which keeps random access to a single patch
// cheap on both local and remote storage.
//
// # File Format
//
//	┌─────────────────────────────────────────┐
//	│ Header (64 bytes)                       │
//	├─────────────────────────────────────────┤
//	│ Lookup (Count × 8 bytes)                │
//	│   center cell IDs in slot order         │
//	├─────────────────────────────────────────┤
//	│ Offsets (Count+1 × 8 bytes)             │
//	│   block offsets relative to BlocksOffset│
//	├─────────────────────────────────────────┤
//	│ Blocks (variable)                       │
//	│   framed patch payloads, per-block      │
//	│   LZ4/ZSTD compression                  │
//	└─────────────────────────────────────────┘
//
// Each uncompressed patch payload is the side×side slot grid as little
// endian int32 values in row-major order, followed by a presence bitmap of
// ⌈side²/64⌉ uint64 words. The bitmap tells slots written by the builder
// apart from sentinel positions, since the sentinel value 0 is also a valid
// slot reference.
//
// # Reading
//
// Open serves memory-mapped blobs zero-copy. For remote blobs only the
// header and lookup tables are fetched eagerly and each Patch call reads a
// single block, which pairs well with blobstore.CachingStore.
//
// # Thread Safety
//
// Snapshots are immutable and Readers are safe for concurrent use.
package snapshot
