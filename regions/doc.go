// Package regions indexes a set of hex cells and their payload rows.
//
// A Table assigns every cell a dense slot (its position in the input, in
// input order) and keeps the payload row alongside. Slots are the
// vocabulary of patch grids: a patch stores slots, not IDs, so payloads
// stay out of the hot path and the grid packs into int32 cells.
//
// Tables are immutable once built. To change the region set, build a new
// Table; datasets and snapshots hold on to the one they were built with.
package regions
