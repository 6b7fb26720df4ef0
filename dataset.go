package hexpatch

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/internal/bitset"
	"github.com/hupe1980/hexpatch/neighborhood"
	"github.com/hupe1980/hexpatch/regions"
)

// Dataset is an indexable collection of hexagonal neighborhood patches
// over a region table, one patch per valid center. A center is valid when
// its full disk of the configured ring distance is present in the table;
// cells with incomplete neighborhoods are silently excluded during
// construction. Valid centers keep the table's slot order.
//
// Patches are materialized fresh on every access, so a Dataset holds no
// per-patch state beyond the center list and is safe for concurrent use.
type Dataset[T any] struct {
	table        *regions.Table[T]
	neigh        neighborhood.Neighborhood
	ringDistance int
	centers      []cell.ID
	centerSlots  *roaring64.Bitmap
	index        map[cell.ID]int
	logger       *Logger
	metrics      MetricsCollector
}

// New builds a Dataset over the table with the given ring distance. The
// ring distance is validated before the table is scanned; it must be at
// least MinRingDistance. The validity scan visits every table cell once
// and can be parallelized with WithBuildParallelism.
//
// Disk queries go to the built-in neighborhood.Grid unless a different
// backend is supplied with WithNeighborhood.
func New[T any](ctx context.Context, table *regions.Table[T], ringDistance int, optFns ...Option) (*Dataset[T], error) {
	if ringDistance < MinRingDistance {
		return nil, &ErrInvalidRingDistance{Distance: ringDistance}
	}

	if table == nil {
		return nil, errors.New("table must not be nil")
	}

	opts := applyOptions(optFns)

	d := &Dataset[T]{
		table:        table,
		neigh:        opts.neighborhood,
		ringDistance: ringDistance,
		logger:       opts.logger,
		metrics:      opts.metricsCollector,
	}

	if d.neigh == nil {
		d.neigh = neighborhood.NewGrid()
	}

	start := time.Now()

	valid, err := d.scan(ctx, opts.parallelism)
	if err != nil {
		d.metrics.RecordBuild(table.Len(), 0, time.Since(start), err)
		d.logger.LogBuild(ctx, ringDistance, table.Len(), 0, err)

		return nil, err
	}

	d.centers = make([]cell.ID, 0, len(valid))
	d.centerSlots = roaring64.New()
	d.index = make(map[cell.ID]int)

	for slot, id := range table.All() {
		if valid[slot] {
			d.index[id] = len(d.centers)
			d.centers = append(d.centers, id)
			d.centerSlots.Add(uint64(slot))
		}
	}

	d.metrics.RecordBuild(table.Len(), len(d.centers), time.Since(start), nil)
	d.logger.LogBuild(ctx, ringDistance, table.Len(), len(d.centers), nil)

	return d, nil
}

// scan marks each table slot whose full disk is present in the table.
func (d *Dataset[T]) scan(ctx context.Context, parallelism int) ([]bool, error) {
	valid := make([]bool, d.table.Len())

	if parallelism <= 1 || d.table.Len() == 0 {
		for slot, id := range d.table.All() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			ok, err := d.centerValid(id)
			if err != nil {
				return nil, err
			}

			valid[slot] = ok
		}

		return valid, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	chunk := (d.table.Len() + parallelism - 1) / parallelism

	for lo := 0; lo < d.table.Len(); lo += chunk {
		hi := min(lo+chunk, d.table.Len())

		g.Go(func() error {
			for s := lo; s < hi; s++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				id, _ := d.table.Cell(regions.Slot(s))

				ok, err := d.centerValid(id)
				if err != nil {
					return err
				}

				valid[s] = ok
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return valid, nil
}

// centerValid reports whether the cell's full disk is present in the
// table. The disk is taken unchecked from the backend and the membership
// test happens here, so alternative Neighborhood implementations need no
// filter wiring of their own. A disk truncated at the frame edge falls
// short of the full disk size and fails the check.
func (d *Dataset[T]) centerValid(id cell.ID) (bool, error) {
	disk, err := d.neigh.Disk(id, d.ringDistance, func(o *neighborhood.DiskOptions) {
		o.IncludeCenter = true
		o.Unchecked = true
	})
	if err != nil {
		return false, err
	}

	if len(disk) != neighborhood.DiskSize(d.ringDistance) {
		return false, nil
	}

	for _, n := range disk {
		if !d.table.Contains(n) {
			return false, nil
		}
	}

	return true, nil
}

// Len returns the number of valid centers, and thereby patches.
func (d *Dataset[T]) Len() int {
	return len(d.centers)
}

// RingDistance returns the configured neighborhood radius.
func (d *Dataset[T]) RingDistance() int {
	return d.ringDistance
}

// Side returns the patch grid side length, 2*RingDistance()+2.
func (d *Dataset[T]) Side() int {
	return 2*d.ringDistance + 2
}

// Table returns the region table the dataset was built over. Patch values
// are slot references into it.
func (d *Dataset[T]) Table() *regions.Table[T] {
	return d.table
}

// Centers returns the valid centers in dataset order. The returned slice
// is shared and must not be modified.
func (d *Dataset[T]) Centers() []cell.ID {
	return d.centers
}

// Center returns the center cell of patch i, if i is in range.
func (d *Dataset[T]) Center(i int) (cell.ID, bool) {
	if i < 0 || i >= len(d.centers) {
		return 0, false
	}

	return d.centers[i], true
}

// CenterSlots returns the table slots of all valid centers as a bitmap.
// The returned bitmap is a copy and safe to mutate, for instance to
// intersect with a sampling mask.
func (d *Dataset[T]) CenterSlots() *roaring64.Bitmap {
	return d.centerSlots.Clone()
}

// IndexOf returns the dataset index of the patch centered on the cell, if
// the cell is a valid center.
func (d *Dataset[T]) IndexOf(id cell.ID) (int, bool) {
	i, ok := d.index[id]
	return i, ok
}

// Get materializes patch i. Patches are computed fresh on every call;
// nothing is cached between accesses.
func (d *Dataset[T]) Get(i int) (Patch, error) {
	start := time.Now()

	patch, err := d.patchAt(i)

	d.metrics.RecordPatch(time.Since(start), err)

	return patch, err
}

// Patches iterates the dataset in order, materializing patches lazily.
// The sequence is restartable: every range statement starts over from
// patch 0.
func (d *Dataset[T]) Patches() iter.Seq2[int, Patch] {
	return func(yield func(int, Patch) bool) {
		for i := range d.centers {
			patch, err := d.patchAt(i)
			if err != nil {
				return
			}

			if !yield(i, patch) {
				return
			}
		}
	}
}

func (d *Dataset[T]) patchAt(i int) (Patch, error) {
	if i < 0 || i >= len(d.centers) {
		return Patch{}, &ErrIndexOutOfRange{Index: i, Length: len(d.centers)}
	}

	return d.materialize(d.centers[i])
}

// materialize renders the patch grid for a valid center. Every disk cell
// is a table member here, so each grid position inside the disk receives
// its slot reference.
func (d *Dataset[T]) materialize(center cell.ID) (Patch, error) {
	disk, err := d.neigh.Disk(center, d.ringDistance, func(o *neighborhood.DiskOptions) {
		o.IncludeCenter = true
		o.Unchecked = true
	})
	if err != nil {
		return Patch{}, err
	}

	side := 2*d.ringDistance + 2
	values := make([]int32, side*side)
	mask := bitset.New(side * side)

	for _, id := range disk {
		di, dj, err := cell.LocalIJ(center, id)
		if err != nil {
			return Patch{}, err
		}

		slot, ok := d.table.Slot(id)
		if !ok {
			continue
		}

		row, col := GridPosition(d.ringDistance, di, dj)
		k := row*side + col

		values[k] = int32(slot)
		mask.Set(k)
	}

	return Patch{
		Center:       center,
		Values:       values,
		Mask:         mask.Words(),
		ringDistance: d.ringDistance,
	}, nil
}
