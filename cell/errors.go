package cell

import "fmt"

// ErrInvalidCell indicates an ID whose encoding is malformed (zero value,
// wrong mode bits, or an axis outside the encodable range).
type ErrInvalidCell struct {
	ID ID
}

func (e *ErrInvalidCell) Error() string {
	return fmt.Sprintf("invalid cell: %#x", uint64(e.ID))
}

// ErrNotComparable indicates two cells that do not share a local coordinate
// frame (different zone or resolution). Offsets between such cells are
// undefined and never approximated.
type ErrNotComparable struct {
	Origin ID
	Target ID
}

func (e *ErrNotComparable) Error() string {
	return fmt.Sprintf("cells not locally comparable: %s and %s", e.Origin, e.Target)
}

// ErrResolutionOutOfRange indicates a resolution outside 0..MaxResolution.
type ErrResolutionOutOfRange struct {
	Resolution int
}

func (e *ErrResolutionOutOfRange) Error() string {
	return fmt.Sprintf("resolution out of range: %d", e.Resolution)
}

// ErrAxisOutOfRange indicates an axial coordinate outside ±MaxAxis.
type ErrAxisOutOfRange struct {
	I int
	J int
}

func (e *ErrAxisOutOfRange) Error() string {
	return fmt.Sprintf("axial coordinate out of range: (%d, %d)", e.I, e.J)
}

// ErrInvalidToken indicates a string that does not parse to a valid cell ID.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidToken struct {
	Token string
	cause error
}

func (e *ErrInvalidToken) Error() string {
	return fmt.Sprintf("invalid cell token: %q", e.Token)
}

func (e *ErrInvalidToken) Unwrap() error { return e.cause }
