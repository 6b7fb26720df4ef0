// Package hexpatch provides hexagonal neighborhood patch datasets.
//
// This file implements the fluent builder API for constructing datasets.
// Builders are immutable - each method returns a new builder with the updated configuration.
package hexpatch

import (
	"context"

	"github.com/hupe1980/hexpatch/neighborhood"
	"github.com/hupe1980/hexpatch/regions"
)

// Builder creates a new dataset builder over the given region table.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
// This ensures thread-safety and prevents accidental state sharing.
//
// Example:
//
//	ds, err := hexpatch.Builder(table).
//	    RingDistance(3).
//	    Parallelism(runtime.NumCPU()).
//	    Build(ctx)
func Builder[T any](table *regions.Table[T]) DatasetBuilder[T] {
	return DatasetBuilder[T]{
		table:        table,
		ringDistance: MinRingDistance,
	}
}

// DatasetBuilder is an immutable fluent builder for creating Dataset instances.
// Each method returns a new builder with the updated configuration.
type DatasetBuilder[T any] struct {
	table        *regions.Table[T]
	ringDistance int
	parallelism  int
	neighborhood neighborhood.Neighborhood
	logger       *Logger
	metrics      MetricsCollector
}

// RingDistance sets the neighborhood radius of each patch.
// Larger values grow the patch grid and shrink the set of valid centers.
// Default: MinRingDistance.
func (b DatasetBuilder[T]) RingDistance(distance int) DatasetBuilder[T] {
	b.ringDistance = distance
	return b
}

// Parallelism sets the number of goroutines used for the validity scan.
// Default: 1 (single-threaded). Recommended: runtime.NumCPU() for large tables.
func (b DatasetBuilder[T]) Parallelism(n int) DatasetBuilder[T] {
	b.parallelism = n
	return b
}

// Neighborhood sets the backend used for disk queries.
// Default: the built-in neighborhood.Grid.
func (b DatasetBuilder[T]) Neighborhood(n neighborhood.Neighborhood) DatasetBuilder[T] {
	b.neighborhood = n
	return b
}

// Logger sets the structured logger for operation tracing.
func (b DatasetBuilder[T]) Logger(l *Logger) DatasetBuilder[T] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b DatasetBuilder[T]) Metrics(mc MetricsCollector) DatasetBuilder[T] {
	b.metrics = mc
	return b
}

// Build creates the Dataset, scanning the table for valid centers.
func (b DatasetBuilder[T]) Build(ctx context.Context) (*Dataset[T], error) {
	var opts []Option
	if b.parallelism > 1 {
		opts = append(opts, WithBuildParallelism(b.parallelism))
	}
	if b.neighborhood != nil {
		opts = append(opts, WithNeighborhood(b.neighborhood))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return New(ctx, b.table, b.ringDistance, opts...)
}

// MustBuild creates the Dataset, panicking on error.
func (b DatasetBuilder[T]) MustBuild(ctx context.Context) *Dataset[T] {
	ds, err := b.Build(ctx)
	if err != nil {
		panic(err)
	}
	return ds
}
