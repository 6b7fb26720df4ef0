package integration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hexpatch"
	"github.com/hupe1980/hexpatch/blobstore"
	"github.com/hupe1980/hexpatch/cache"
	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/regions"
	"github.com/hupe1980/hexpatch/regions/sqlite"
	"github.com/hupe1980/hexpatch/resource"
	"github.com/hupe1980/hexpatch/synthetic"
	"github.com/hupe1980/hexpatch/testutil"
)

func TestE2E_BuildExportReopen(t *testing.T) {
	ctx := context.Background()

	// 1. Generate a synthetic frame and build the dataset.
	gen := synthetic.NewGenerator(4711)
	table, err := gen.Table(cell.MustNew(1, 9, 100, 100), 6)
	require.NoError(t, err)

	ds, err := hexpatch.New(ctx, table, 2, hexpatch.WithBuildParallelism(4))
	require.NoError(t, err)

	// 2. Validity matches the brute-force reference.
	cells := make([]cell.ID, 0, table.Len())
	for _, id := range table.All() {
		cells = append(cells, id)
	}
	require.Equal(t, testutil.BruteForceValid(cells, 2), ds.Centers())

	// 3. Export to a local store and reopen with checksum verification.
	store := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, ds.Export(ctx, store, "synthetic-r2.hxps"))

	snap, err := hexpatch.OpenSnapshot(ctx, store, "synthetic-r2.hxps", hexpatch.WithVerifyChecksum(true))
	require.NoError(t, err)
	defer snap.Close()

	// 4. Every patch survives the round trip bit for bit.
	require.Equal(t, ds.Len(), snap.Len())
	require.Equal(t, ds.RingDistance(), snap.RingDistance())
	require.Equal(t, ds.Centers(), snap.Centers())

	for i := range ds.Len() {
		want, err := ds.Get(i)
		require.NoError(t, err)

		got, err := snap.Get(ctx, i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestE2E_SparseFrame(t *testing.T) {
	ctx := context.Background()

	// 1. Punch random holes into a rectangle frame.
	rng := testutil.NewRNG(1)
	cells := rng.SampleCells(testutil.RectCells(1, 9, 24, 24), 0.85)

	rows := make([]float64, len(cells))
	rng.FillUniform(rows)

	table, err := regions.New(cells, rows)
	require.NoError(t, err)

	// 2. Serial and parallel builds agree with the reference.
	serial, err := hexpatch.New(ctx, table, 2)
	require.NoError(t, err)

	parallel, err := hexpatch.New(ctx, table, 2, hexpatch.WithBuildParallelism(8))
	require.NoError(t, err)

	truth := testutil.BruteForceValid(cells, 2)
	require.Equal(t, truth, serial.Centers())
	require.Equal(t, truth, parallel.Centers())
}

func TestE2E_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	// 1. Save a synthetic feature table to SQLite.
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "regions.db"))
	require.NoError(t, err)
	defer db.Close()

	gen := synthetic.NewGenerator(42)
	table, err := gen.Table(cell.MustNew(1, 9, 50, 50), 4)
	require.NoError(t, err)

	require.NoError(t, sqlite.Save(ctx, db, "synthetic", table))

	// 2. Load it back and build datasets from both copies.
	loaded, err := sqlite.Load[synthetic.Features](ctx, db, "synthetic")
	require.NoError(t, err)
	require.Equal(t, table.Len(), loaded.Len())

	a, err := hexpatch.New(ctx, table, 2)
	require.NoError(t, err)

	b, err := hexpatch.New(ctx, loaded, 2)
	require.NoError(t, err)

	// 3. The loaded table yields the same dataset.
	require.Equal(t, a.Centers(), b.Centers())

	for i := range a.Len() {
		pa, err := a.Get(i)
		require.NoError(t, err)

		pb, err := b.Get(i)
		require.NoError(t, err)
		require.Equal(t, pa, pb)
	}
}

func TestE2E_CachedRemoteSnapshot(t *testing.T) {
	ctx := context.Background()

	// 1. Export a dataset into a memory-backed store.
	gen := synthetic.NewGenerator(7)
	table, err := gen.Table(cell.MustNew(1, 9, 80, 80), 5)
	require.NoError(t, err)

	ds, err := hexpatch.New(ctx, table, 2)
	require.NoError(t, err)

	remote := blobstore.NewMemoryStore()
	require.NoError(t, ds.Export(ctx, remote, "remote.hxps"))

	// 2. Reopen through a block cache, as a remote deployment would.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 8 << 20})
	cached := blobstore.NewCachingStore(remote, cache.NewLRUBlockCache(1<<20, rc), 4096)

	snap, err := hexpatch.OpenSnapshot(ctx, cached, "remote.hxps", hexpatch.WithVerifyChecksum(true))
	require.NoError(t, err)
	defer snap.Close()

	// 3. Repeated reads come back identical once blocks are cached.
	first, err := snap.Get(ctx, 0)
	require.NoError(t, err)

	second, err := snap.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, first, second)

	want, err := ds.Get(0)
	require.NoError(t, err)
	require.Equal(t, want, second)
}

func TestE2E_LazyIteration(t *testing.T) {
	ctx := context.Background()

	// 1. Build a dataset over a rectangle frame.
	cells := testutil.RectCells(1, 9, 12, 12)
	rows := make([]float64, len(cells))
	testutil.NewRNG(9).FillUniform(rows)

	table, err := regions.New(cells, rows)
	require.NoError(t, err)

	ds, err := hexpatch.New(ctx, table, 2)
	require.NoError(t, err)

	// 2. Iterating twice yields the same patches as indexed access.
	for range 2 {
		n := 0
		for i, patch := range ds.Patches() {
			want, err := ds.Get(i)
			require.NoError(t, err)
			require.Equal(t, want, patch)
			n++
		}
		require.Equal(t, ds.Len(), n)
	}
}
