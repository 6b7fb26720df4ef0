package synthetic

import (
	"testing"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/neighborhood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	center := cell.MustNew(1, 9, 0, 0)

	a := NewGenerator(42)
	b := NewGenerator(42)

	for _, id := range []cell.ID{center, cell.MustNew(1, 9, 3, -2), cell.MustNew(1, 9, -100, 250)} {
		assert.Equal(t, a.Row(id), b.Row(id))
	}

	other := NewGenerator(43)
	assert.NotEqual(t, a.Row(center), other.Row(center))
}

func TestGenerator_Range(t *testing.T) {
	g := NewGenerator(7)

	for i := -20; i <= 20; i += 5 {
		for j := -20; j <= 20; j += 5 {
			f := g.Row(cell.MustNew(1, 9, i, j))

			assert.GreaterOrEqual(t, f.Elevation, 0.0)
			assert.LessOrEqual(t, f.Elevation, 1.0)
			assert.GreaterOrEqual(t, f.Moisture, 0.0)
			assert.LessOrEqual(t, f.Moisture, 1.0)
			assert.GreaterOrEqual(t, f.Temperature, 0.0)
			assert.LessOrEqual(t, f.Temperature, 1.0)
		}
	}
}

func TestGenerator_Table(t *testing.T) {
	g := NewGenerator(42)
	center := cell.MustNew(1, 9, 0, 0)

	table, err := g.Table(center, 4)
	require.NoError(t, err)

	assert.Equal(t, neighborhood.DiskSize(4), table.Len())
	assert.True(t, table.Contains(center))

	// Rows match single-cell sampling
	for slot, id := range table.All() {
		row, ok := table.Row(slot)
		require.True(t, ok)
		assert.Equal(t, g.Row(id), row)
	}
}

func TestGenerator_Table_InvalidCenter(t *testing.T) {
	g := NewGenerator(42)

	_, err := g.Table(0, 4)
	assert.Error(t, err)
}
