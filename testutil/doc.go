// Package testutil provides testing utilities for hexpatch.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating hexagonal cell frames, punching
// random holes into them, and computing ground-truth neighborhood
// validity by brute force.
//
// # Random Fixtures
//
//	rng := testutil.NewRNG(seed)
//	cells := testutil.RectCells(1, 9, 32, 32)
//	sparse := rng.SampleCells(cells, 0.8) // keep ~80%
//
// # Ground Truth Validity
//
//	valid := testutil.BruteForceValid(cells, 2)
package testutil
