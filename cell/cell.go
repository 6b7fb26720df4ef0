package cell

import "strconv"

// ID identifies one hexagonal grid cell.
//
// An ID packs the cell's coordinate frame and axial position into a single
// uint64 so IDs are cheap to copy, hash, and order:
//
//	bits 63..60  mode        (always 1; the zero ID is invalid)
//	bits 59..52  zone        (base partition of the grid, 0..255)
//	bits 51..48  resolution  (0..15)
//	bits 47..24  i axis      (signed, stored biased by 1<<23)
//	bits 23..0   j axis      (signed, stored biased by 1<<23)
//
// The natural uint64 order sorts by zone, then resolution, then i, then j,
// so sorting a slice of IDs is deterministic and frame-grouped. IDs are
// stable: the same cell always encodes to the same value.
type ID uint64

const (
	// MaxResolution is the finest grid resolution an ID can encode.
	MaxResolution = 15

	// MaxAxis is the largest axial coordinate an ID can encode. The valid
	// range for both axes is [-MaxAxis, MaxAxis].
	MaxAxis = 1<<23 - 1
)

const (
	modeCell = 1

	modeShift = 60
	zoneShift = 52
	resShift  = 48
	iShift    = 24

	axisBias = 1 << 23
	axisMask = 1<<24 - 1
	resMask  = 0xf
	zoneMask = 0xff
)

// neighborDirs are the six axial unit steps of the hex grid. Together with
// their negations they define adjacency: two cells are neighbors iff their
// axial offset is one of these or its inverse.
var neighborDirs = [6][2]int{
	{1, 0}, {0, 1}, {1, 1}, {-1, 0}, {0, -1}, {-1, -1},
}

// New encodes a cell ID from its coordinate frame (zone, resolution) and
// axial position. It fails if the resolution or either axis is outside the
// encodable range.
func New(zone uint8, res, i, j int) (ID, error) {
	if res < 0 || res > MaxResolution {
		return 0, &ErrResolutionOutOfRange{Resolution: res}
	}
	if i < -MaxAxis || i > MaxAxis || j < -MaxAxis || j > MaxAxis {
		return 0, &ErrAxisOutOfRange{I: i, J: j}
	}
	return pack(zone, res, i, j), nil
}

// MustNew is like New but panics on error. Intended for fixtures and
// examples with hand-picked coordinates.
func MustNew(zone uint8, res, i, j int) ID {
	id, err := New(zone, res, i, j)
	if err != nil {
		panic(err)
	}
	return id
}

// pack assembles an ID from pre-validated components.
func pack(zone uint8, res, i, j int) ID {
	return ID(uint64(modeCell)<<modeShift |
		uint64(zone)<<zoneShift |
		uint64(res)<<resShift |
		(uint64(i+axisBias)&axisMask)<<iShift |
		uint64(j+axisBias)&axisMask)
}

// Valid reports whether the ID is a well-formed cell encoding. The zero ID
// is invalid, as is any value with foreign mode bits or a biased axis of
// zero (which would decode below -MaxAxis).
func (id ID) Valid() bool {
	if uint64(id)>>modeShift != modeCell {
		return false
	}
	if (uint64(id)>>iShift)&axisMask == 0 {
		return false
	}
	return uint64(id)&axisMask != 0
}

// Zone returns the base partition the cell belongs to.
func (id ID) Zone() uint8 {
	return uint8(uint64(id) >> zoneShift & zoneMask)
}

// Resolution returns the grid resolution of the cell.
func (id ID) Resolution() int {
	return int(uint64(id) >> resShift & resMask)
}

// Axial returns the cell's axial coordinates within its frame.
func (id ID) Axial() (i, j int) {
	i = int(uint64(id)>>iShift&axisMask) - axisBias
	j = int(uint64(id)&axisMask) - axisBias
	return i, j
}

// String returns the canonical lowercase-hex token of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 16)
}

// Parse decodes a token produced by String. It fails for non-hex input and
// for hex values that are not valid cell encodings.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, &ErrInvalidToken{Token: s, cause: err}
	}
	id := ID(v)
	if !id.Valid() {
		return 0, &ErrInvalidToken{Token: s}
	}
	return id, nil
}

// Comparable reports whether two cells share a local coordinate frame, i.e.
// whether axial offsets between them are defined. Cells are comparable iff
// both are valid and have the same zone and resolution.
func Comparable(a, b ID) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	const frame = uint64(zoneMask)<<zoneShift | uint64(resMask)<<resShift
	return uint64(a)&frame == uint64(b)&frame
}

// LocalIJ computes the target's axial position relative to origin. It fails
// with ErrNotComparable when the cells do not share a coordinate frame;
// that is a hard precondition violation, never recovered automatically.
func LocalIJ(origin, target ID) (i, j int, err error) {
	if !Comparable(origin, target) {
		return 0, 0, &ErrNotComparable{Origin: origin, Target: target}
	}
	oi, oj := origin.Axial()
	ti, tj := target.Axial()
	return ti - oi, tj - oj, nil
}

// Distance returns the hex grid distance between two cells: the minimum
// number of neighbor steps from a to b. It fails for non-comparable cells.
func Distance(a, b ID) (int, error) {
	di, dj, err := LocalIJ(a, b)
	if err != nil {
		return 0, err
	}
	return hexDistance(di, dj), nil
}

// hexDistance is the grid distance of an axial offset under the
// neighborDirs adjacency: max(|di|, |dj|, |di-dj|).
func hexDistance(di, dj int) int {
	return max(abs(di), abs(dj), abs(di-dj))
}

// Offset returns the cell at the given axial offset from id, staying within
// the same coordinate frame. It fails if id is invalid or the target lies
// outside the encodable range.
func (id ID) Offset(di, dj int) (ID, error) {
	if !id.Valid() {
		return 0, &ErrInvalidCell{ID: id}
	}
	i, j := id.Axial()
	return New(id.Zone(), id.Resolution(), i+di, j+dj)
}

// AppendNeighbors appends the cell's grid neighbors to dst and returns the
// extended slice. Neighbors whose coordinates would leave the encodable
// range are dropped, so cells on the frame edge have fewer than six.
// Passing a reused dst[:0] avoids allocation on hot paths.
func (id ID) AppendNeighbors(dst []ID) []ID {
	zone := id.Zone()
	res := id.Resolution()
	i, j := id.Axial()
	for _, d := range neighborDirs {
		ni, nj := i+d[0], j+d[1]
		if ni < -MaxAxis || ni > MaxAxis || nj < -MaxAxis || nj > MaxAxis {
			continue
		}
		dst = append(dst, pack(zone, res, ni, nj))
	}
	return dst
}

// Neighbors returns the cell's grid neighbors (up to six).
func (id ID) Neighbors() []ID {
	return id.AppendNeighbors(make([]ID, 0, len(neighborDirs)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
