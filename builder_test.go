package hexpatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hexpatch"
	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/neighborhood"
	"github.com/hupe1980/hexpatch/regions"
)

// testTable builds a 7x7 axial rectangle, which holds nine valid centers
// at ring distance 2 and one at ring distance 3.
func testTable(t *testing.T) *regions.Table[string] {
	t.Helper()

	var (
		ids  []cell.ID
		rows []string
	)

	for j := range 7 {
		for i := range 7 {
			ids = append(ids, cell.MustNew(1, 9, i, j))
			rows = append(rows, "")
		}
	}

	table, err := regions.New(ids, rows)
	require.NoError(t, err)

	return table
}

func TestBuilder_Basic(t *testing.T) {
	ds, err := hexpatch.Builder(testTable(t)).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, hexpatch.MinRingDistance, ds.RingDistance())
	assert.Equal(t, 9, ds.Len())
}

func TestBuilder_Configured(t *testing.T) {
	metrics := &hexpatch.BasicMetricsCollector{}

	ds, err := hexpatch.Builder(testTable(t)).
		RingDistance(3).
		Parallelism(2).
		Logger(hexpatch.NoopLogger()).
		Metrics(metrics).
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.RingDistance())
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, int64(1), metrics.GetStats().BuildCount)
}

func TestBuilder_Immutable(t *testing.T) {
	base := hexpatch.Builder(testTable(t))
	widened := base.RingDistance(3)

	ds1, err := base.Build(context.Background())
	require.NoError(t, err)

	ds2, err := widened.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ds1.RingDistance())
	assert.Equal(t, 3, ds2.RingDistance())
}

type recordingNeighborhood struct {
	inner neighborhood.Neighborhood
	calls int
}

func (r *recordingNeighborhood) Disk(center cell.ID, distance int, optFns ...func(o *neighborhood.DiskOptions)) ([]cell.ID, error) {
	r.calls++
	return r.inner.Disk(center, distance, optFns...)
}

func TestBuilder_Neighborhood(t *testing.T) {
	backend := &recordingNeighborhood{inner: neighborhood.NewGrid()}

	ds, err := hexpatch.Builder(testTable(t)).
		Neighborhood(backend).
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, ds.Len())
	assert.NotZero(t, backend.calls)
}

func TestBuilder_InvalidRingDistance(t *testing.T) {
	_, err := hexpatch.Builder(testTable(t)).
		RingDistance(1).
		Build(context.Background())

	var invalidErr *hexpatch.ErrInvalidRingDistance
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 1, invalidErr.Distance)
}

func TestBuilder_MustBuild(t *testing.T) {
	ds := hexpatch.Builder(testTable(t)).MustBuild(context.Background())
	assert.Equal(t, 9, ds.Len())

	assert.Panics(t, func() {
		hexpatch.Builder(testTable(t)).RingDistance(0).MustBuild(context.Background())
	})
}
