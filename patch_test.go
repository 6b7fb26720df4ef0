package hexpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridPosition(t *testing.T) {
	tests := []struct {
		name     string
		distance int
		i, j     int
		row, col int
	}{
		{name: "center", distance: 2, i: 0, j: 0, row: 2, col: 2},
		{name: "north east", distance: 2, i: 1, j: 1, row: 1, col: 3},
		{name: "south west corner", distance: 2, i: -2, j: -2, row: 4, col: 0},
		{name: "east", distance: 3, i: 3, j: 0, row: 3, col: 6},
		{name: "north", distance: 3, i: 0, j: 3, row: 0, col: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := GridPosition(tt.distance, tt.i, tt.j)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)

			i, j := AxialOffset(tt.distance, row, col)
			assert.Equal(t, tt.i, i)
			assert.Equal(t, tt.j, j)
		})
	}
}

func TestPatch_At(t *testing.T) {
	patch := Patch{
		Values:       make([]int32, 36),
		Mask:         make([]uint64, 1),
		ringDistance: 2,
	}

	assert.Equal(t, 0, patch.Count())

	// Occupy the center (row 2, col 2, position 14) and two corners.
	patch.Values[14] = 7
	patch.Mask[0] = 1<<14 | 1<<0 | 1<<35

	assert.Equal(t, 3, patch.Count())

	v, ok := patch.At(2, 2)
	assert.True(t, ok)
	assert.Equal(t, int32(7), v)

	v, ok = patch.At(0, 0)
	assert.True(t, ok)
	assert.Equal(t, int32(0), v)

	// Empty positions report false even though they read as slot 0.
	_, ok = patch.At(1, 1)
	assert.False(t, ok)
}

func TestPatch_At_OutOfBounds(t *testing.T) {
	patch := Patch{
		Values:       make([]int32, 36),
		Mask:         make([]uint64, 1),
		ringDistance: 2,
	}

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {6, 0}, {0, 6}} {
		_, ok := patch.At(pos[0], pos[1])
		assert.False(t, ok, "position (%d,%d)", pos[0], pos[1])
	}
}
