package regions

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/hexpatch/cell"
)

// Slot is the dense position of a cell in a Table: 0..Len-1 in input
// order. Slots are what patch grids store, so they stay int32-sized.
type Slot int32

// Table is an immutable index over a set of regions: each cell ID maps to
// a dense slot and an opaque payload row of type T. Input order is
// preserved, nothing is re-sorted. A Table is safe for concurrent use.
type Table[T any] struct {
	ids     []cell.ID
	rows    []T
	slots   map[cell.ID]Slot
	members *roaring64.Bitmap
}

// New builds a Table from parallel cell and row slices. The slot of a cell
// is its position in ids. Both slices are copied. It fails on length
// mismatch, on invalid cells, and on duplicates.
func New[T any](ids []cell.ID, rows []T) (*Table[T], error) {
	if len(ids) != len(rows) {
		return nil, &ErrLengthMismatch{Cells: len(ids), Rows: len(rows)}
	}

	t := &Table[T]{
		ids:  make([]cell.ID, len(ids)),
		rows: make([]T, len(rows)),
	}

	copy(t.ids, ids)
	copy(t.rows, rows)

	return t, t.index()
}

// Collect builds a Table from a (cell, row) sequence, preserving yield
// order. It fails on invalid cells and on duplicates.
func Collect[T any](seq iter.Seq2[cell.ID, T]) (*Table[T], error) {
	t := &Table[T]{}

	for id, row := range seq {
		t.ids = append(t.ids, id)
		t.rows = append(t.rows, row)
	}

	return t, t.index()
}

// index builds the slot map and membership bitmap over t.ids, validating
// as it goes.
func (t *Table[T]) index() error {
	t.slots = make(map[cell.ID]Slot, len(t.ids))
	t.members = roaring64.New()

	for i, id := range t.ids {
		if !id.Valid() {
			return &cell.ErrInvalidCell{ID: id}
		}

		if prev, ok := t.slots[id]; ok {
			return &ErrDuplicateCell{ID: id, Slot: prev}
		}

		t.slots[id] = Slot(i)
		t.members.Add(uint64(id))
	}

	return nil
}

// Len returns the number of regions in the table.
func (t *Table[T]) Len() int {
	return len(t.ids)
}

// Slot returns the dense slot of a cell, if present.
func (t *Table[T]) Slot(id cell.ID) (Slot, bool) {
	s, ok := t.slots[id]
	return s, ok
}

// Cell returns the cell at a slot, if the slot is in range.
func (t *Table[T]) Cell(slot Slot) (cell.ID, bool) {
	if slot < 0 || int(slot) >= len(t.ids) {
		return 0, false
	}

	return t.ids[slot], true
}

// Row returns the payload row at a slot, if the slot is in range.
func (t *Table[T]) Row(slot Slot) (T, bool) {
	if slot < 0 || int(slot) >= len(t.rows) {
		var zero T
		return zero, false
	}

	return t.rows[slot], true
}

// Contains reports whether the cell is indexed. Table thereby satisfies
// neighborhood.Membership.
func (t *Table[T]) Contains(id cell.ID) bool {
	_, ok := t.slots[id]
	return ok
}

// Membership returns the set of indexed cell IDs as a bitmap. The result
// is a copy, callers may mutate it freely.
func (t *Table[T]) Membership() *roaring64.Bitmap {
	return t.members.Clone()
}

// All iterates the table in slot order.
func (t *Table[T]) All() iter.Seq2[Slot, cell.ID] {
	return func(yield func(Slot, cell.ID) bool) {
		for i, id := range t.ids {
			if !yield(Slot(i), id) {
				return
			}
		}
	}
}
