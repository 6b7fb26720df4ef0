package neighborhood

import "fmt"

// ErrNegativeDistance indicates a disk query with a negative distance.
type ErrNegativeDistance struct {
	Distance int
}

func (e *ErrNegativeDistance) Error() string {
	return fmt.Sprintf("negative neighborhood distance: %d", e.Distance)
}
