package hexpatch

import (
	"fmt"
)

// MinRingDistance is the smallest ring distance a dataset accepts. Smaller
// neighborhoods do not leave room for the convolutional padding row and
// column in the patch grid.
const MinRingDistance = 2

// ErrInvalidRingDistance indicates a ring distance below MinRingDistance.
type ErrInvalidRingDistance struct {
	Distance int
}

func (e *ErrInvalidRingDistance) Error() string {
	return fmt.Sprintf("invalid ring distance: %d (minimum is %d)", e.Distance, MinRingDistance)
}

// ErrIndexOutOfRange indicates a patch index outside [0, Len).
type ErrIndexOutOfRange struct {
	Index  int
	Length int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("patch index out of range: %d (dataset length %d)", e.Index, e.Length)
}
