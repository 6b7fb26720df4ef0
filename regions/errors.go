package regions

import (
	"fmt"

	"github.com/hupe1980/hexpatch/cell"
)

// ErrLengthMismatch indicates cell and row slices of different lengths.
type ErrLengthMismatch struct {
	Cells int
	Rows  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d cells, %d rows", e.Cells, e.Rows)
}

// ErrDuplicateCell indicates a cell that occurs more than once in the
// input. Slot is the slot of the earlier occurrence.
type ErrDuplicateCell struct {
	ID   cell.ID
	Slot Slot
}

func (e *ErrDuplicateCell) Error() string {
	return fmt.Sprintf("duplicate cell %s (already at slot %d)", e.ID, e.Slot)
}
