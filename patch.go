package hexpatch

import (
	"math/bits"

	"github.com/hupe1980/hexpatch/cell"
)

// Patch is one hexagonal neighborhood rendered as a square grid, the
// convolutional analogue of an image patch. For ring distance r the grid
// side is 2r+2: the disk itself occupies rows and columns 0..2r, and the
// last row and column stay empty so the grid divides evenly under
// stride-2 convolutions.
//
// A cell at local axial offset (i, j) from the center lands at
//
//	row = r - j
//	col = i + r
//
// which puts the center at (r, r). Values holds slot references into the
// table the patch was built from; empty positions hold 0, which is also a
// valid slot reference, so consult Mask before trusting a zero.
type Patch struct {
	// Center is the cell the patch is anchored on.
	Center cell.ID

	// Values is the side*side slot grid in row-major order.
	Values []int32

	// Mask marks occupied grid positions. Bit k (word k/64, bit k%64)
	// corresponds to row-major position k of Values.
	Mask []uint64

	ringDistance int
}

// RingDistance returns the neighborhood radius the patch was built with.
func (p Patch) RingDistance() int {
	return p.ringDistance
}

// Side returns the patch grid side length, 2*RingDistance()+2.
func (p Patch) Side() int {
	return 2*p.ringDistance + 2
}

// At returns the slot reference at the given grid position and whether the
// position holds a cell. Out-of-bounds positions report false.
func (p Patch) At(row, col int) (int32, bool) {
	side := p.Side()
	if row < 0 || row >= side || col < 0 || col >= side {
		return 0, false
	}

	k := row*side + col
	if p.Mask[k/64]&(1<<(k%64)) == 0 {
		return 0, false
	}

	return p.Values[k], true
}

// Count returns the number of occupied grid positions.
func (p Patch) Count() int {
	n := 0
	for _, w := range p.Mask {
		n += bits.OnesCount64(w)
	}
	return n
}

// GridPosition maps a local axial offset (i, j) from the patch center to
// its grid position. The mapping is fixed: row = r - j, col = i + r, with
// the center at (r, r). Downstream models rely on this exact convention.
func GridPosition(ringDistance, i, j int) (row, col int) {
	return ringDistance - j, i + ringDistance
}

// AxialOffset is the inverse of GridPosition: it recovers the local axial
// offset a grid position stands for.
func AxialOffset(ringDistance, row, col int) (i, j int) {
	return col - ringDistance, ringDistance - row
}
