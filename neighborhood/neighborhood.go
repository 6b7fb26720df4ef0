package neighborhood

import (
	"github.com/hupe1980/hexpatch/cell"
)

// DiskOptions contains options for disk queries.
type DiskOptions struct {
	// IncludeCenter includes the center cell itself in the result.
	// Default: false
	IncludeCenter bool

	// Unchecked skips the backend's membership filter and returns the
	// full geometric disk. Intended for callers that do their own
	// filtering against a data index.
	// Default: false
	Unchecked bool
}

// Neighborhood answers disk queries on a hex grid: which cells lie within
// a given grid distance of a center cell.
type Neighborhood interface {
	// Disk returns all cells within the given distance of center. A
	// negative distance is an error, distance zero is the center alone.
	// Results are sorted by ID, so equal queries yield equal slices.
	Disk(center cell.ID, distance int, optFns ...func(o *DiskOptions)) ([]cell.ID, error)
}

// DiskSize returns the cell count of a full disk: 1 + 3*d*(d+1), counting
// the center. Disks truncated by a membership filter or the frame edge
// are smaller.
func DiskSize(distance int) int {
	if distance < 0 {
		return 0
	}

	return 1 + 3*distance*(distance+1)
}
