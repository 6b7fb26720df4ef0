// Package neighborhood answers disk queries on the hex grid: which cells
// lie within a given grid distance of a center cell.
//
// The Neighborhood interface decouples callers from the backend. Grid is
// the canonical implementation over the regular grid itself; alternative
// backends (precomputed adjacency, remote indexes) can be swapped in as
// long as they keep the same disk semantics: distance zero is the center
// alone, results are sorted by ID, and a negative distance fails with
// ErrNegativeDistance.
package neighborhood
