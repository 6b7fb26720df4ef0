// Package hexpatch provides hexagonal neighborhood patch datasets for Go.
//
// Hexpatch turns a table of hex-grid regions into the hexagonal analogue
// of convolutional image patches: for every cell whose complete disk of
// neighbors is present in the table, it renders that neighborhood onto a
// square grid of slot references, ready to drive embedding models that
// consume image-like inputs.
//
//   - Compact uint64 cell IDs with axial coordinates, zones and resolutions
//   - Exact disk queries by breadth-first ring expansion
//   - Validity filtering: centers with incomplete neighborhoods are excluded
//   - Patches materialized fresh per access, safe for concurrent use
//   - Immutable snapshot format with per-block LZ4/ZSTD compression
//   - Pluggable blob storage: local files (mmap), S3, MinIO, in-memory
//   - Named region tables persisted to SQLite
//   - Deterministic synthetic feature tables for tests and benchmarks
//
// # Patch Geometry
//
// For ring distance r each patch is a (2r+2)x(2r+2) grid. A neighbor at
// local axial offset (i, j) from the center lands at row r-j, column i+r,
// which puts the center at (r, r) and leaves the last row and column empty
// as padding. Grid positions outside the hexagonal disk hold the sentinel
// value 0; since 0 is also a valid slot reference, every patch carries a
// presence bitmap alongside its values.
//
// # Quick Start (Fluent API)
//
//	ctx := context.Background()
//
//	table, err := regions.New(ids, rows)
//	if err != nil {
//	    panic(err)
//	}
//
//	ds, err := hexpatch.Builder(table).
//	    RingDistance(3).
//	    Parallelism(runtime.NumCPU()).
//	    Build(ctx)
//	if err != nil {
//	    panic(err)
//	}
//
//	patch, err := ds.Get(0)        // one patch, computed fresh
//	slot, ok := patch.At(3, 3)     // center position for r=3
//	row, _ := table.Row(regions.Slot(slot))
//
// Iterate lazily; the sequence restarts on every range statement:
//
//	for i, patch := range ds.Patches() {
//	    process(i, patch)
//	}
//
// # Snapshots
//
// Datasets can be exported once and served many times without the
// originating table, locally or from object storage:
//
//	store := blobstore.NewLocalStore("./data")
//	if err := ds.Export(ctx, store, "city-r3.hxps"); err != nil {
//	    panic(err)
//	}
//
//	sds, err := hexpatch.OpenSnapshot(ctx, store, "city-r3.hxps")
//	if err != nil {
//	    panic(err)
//	}
//	defer sds.Close()
//
//	patch, err = sds.Get(ctx, 0)
//
// Local snapshots are memory-mapped and served zero-copy. Remote snapshots
// (blobstore/s3, blobstore/minio) fetch single patch blocks on demand and
// pair well with blobstore.CachingStore.
//
// # Persistence
//
// Region tables themselves can be stored as named sets in SQLite via the
// regions/sqlite package, and synthetic tables for tests come from the
// synthetic package.
package hexpatch
