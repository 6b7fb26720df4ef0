// Package cell implements hex grid cell identifiers and their local
// coordinate geometry.
//
// # Identifiers
//
// A cell.ID names one hexagonal cell at a fixed resolution inside a zone (a
// base partition of the grid). IDs are plain uint64 values: hashable,
// totally ordered, and stable for the lifetime of a dataset. See the ID
// type for the exact bit layout.
//
// # Local coordinates
//
// Within one frame (same zone, same resolution) cells carry axial (i, j)
// coordinates. Adjacency is the six unit steps
//
//	(1,0) (0,1) (1,1) (-1,0) (0,-1) (-1,-1)
//
// which gives the grid distance max(|di|, |dj|, |di-dj|) and makes a disk
// of radius r around a cell exactly the offsets with |i| <= r, |j| <= r and
// |i-j| <= r (1 + 3r(r+1) cells).
//
// Offsets across frames are undefined: LocalIJ and Distance fail with
// ErrNotComparable rather than approximating across a zone or resolution
// boundary.
package cell
