package hexpatch

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/hupe1980/hexpatch/blobstore"
	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/resource"
	"github.com/hupe1980/hexpatch/snapshot"
)

// ExportOptions contains options for Dataset.Export.
type ExportOptions struct {
	// Compression selects the per-block compression of patch payloads.
	// Default: snapshot.CompressionLZ4
	Compression snapshot.CompressionType

	// Resources rate-limits snapshot writes when set, which keeps bulk
	// exports from starving co-located serving traffic.
	// Default: nil
	Resources *resource.Controller
}

// Export materializes every patch and writes the dataset to the store as
// an immutable snapshot. Snapshots can later be served with OpenSnapshot,
// without the originating table.
func (d *Dataset[T]) Export(ctx context.Context, store blobstore.Store, name string, optFns ...func(o *ExportOptions)) error {
	opts := ExportOptions{
		Compression: snapshot.CompressionLZ4,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()

	err := d.export(ctx, store, name, opts)

	d.metrics.RecordExport(d.Len(), time.Since(start), err)
	d.logger.LogExport(ctx, name, d.Len(), err)

	return err
}

func (d *Dataset[T]) export(ctx context.Context, store blobstore.Store, name string, opts ExportOptions) (err error) {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create blob %s: %w", name, err)
	}

	defer func() {
		if cerr := blob.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var sink io.Writer = blob
	if opts.Resources != nil {
		sink = resource.NewRateLimitedWriter(ctx, blob, opts.Resources)
	}

	w := snapshot.NewWriter(sink, d.ringDistance, opts.Compression)

	for i := range d.centers {
		if err := ctx.Err(); err != nil {
			return err
		}

		patch, err := d.patchAt(i)
		if err != nil {
			return err
		}

		if err := w.Add(patch.Center, patch.Values, patch.Mask); err != nil {
			return err
		}
	}

	if err := w.Flush(ctx); err != nil {
		return err
	}

	return blob.Sync()
}

// SnapshotDataset serves patches from an exported snapshot. It mirrors the
// read side of Dataset, but patches come from storage instead of being
// recomputed, so serving does not need the region table.
type SnapshotDataset struct {
	reader  *snapshot.Reader
	name    string
	index   map[cell.ID]int
	logger  *Logger
	metrics MetricsCollector
}

// OpenSnapshot opens an exported snapshot from the store. Local snapshots
// are memory-mapped and served zero-copy; remote snapshots fetch patch
// blocks on demand.
func OpenSnapshot(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*SnapshotDataset, error) {
	opts := applyOptions(optFns)

	start := time.Now()

	sd, err := openSnapshot(ctx, store, name, opts)

	opts.metricsCollector.RecordOpen(time.Since(start), err)

	if err != nil {
		opts.logger.LogSnapshotOpen(ctx, name, 0, err)
		return nil, err
	}

	opts.logger.LogSnapshotOpen(ctx, name, sd.Len(), nil)

	return sd, nil
}

func openSnapshot(ctx context.Context, store blobstore.Store, name string, opts options) (*SnapshotDataset, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", name, err)
	}

	reader, err := snapshot.Open(ctx, blob, snapshot.WithVerifyChecksum(opts.verifyChecksum))
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	index := make(map[cell.ID]int, reader.Count())
	for i, id := range reader.CellIDs() {
		index[id] = i
	}

	return &SnapshotDataset{
		reader:  reader,
		name:    name,
		index:   index,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}, nil
}

// Len returns the number of patches in the snapshot.
func (s *SnapshotDataset) Len() int {
	return s.reader.Count()
}

// RingDistance returns the neighborhood radius the snapshot was built with.
func (s *SnapshotDataset) RingDistance() int {
	return s.reader.RingDistance()
}

// Side returns the patch grid side length, 2*RingDistance()+2.
func (s *SnapshotDataset) Side() int {
	return s.reader.Side()
}

// Centers returns the patch centers in dataset order. The returned slice
// is shared and must not be modified.
func (s *SnapshotDataset) Centers() []cell.ID {
	return s.reader.CellIDs()
}

// Center returns the center cell of patch i, if i is in range.
func (s *SnapshotDataset) Center(i int) (cell.ID, bool) {
	return s.reader.CellID(i)
}

// IndexOf returns the dataset index of the patch centered on the cell, if
// the cell is present in the snapshot.
func (s *SnapshotDataset) IndexOf(id cell.ID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Get reads patch i from the snapshot.
func (s *SnapshotDataset) Get(ctx context.Context, i int) (Patch, error) {
	start := time.Now()

	patch, err := s.get(ctx, i)

	s.metrics.RecordPatch(time.Since(start), err)

	return patch, err
}

func (s *SnapshotDataset) get(ctx context.Context, i int) (Patch, error) {
	if i < 0 || i >= s.reader.Count() {
		return Patch{}, &ErrIndexOutOfRange{Index: i, Length: s.reader.Count()}
	}

	values, mask, err := s.reader.Patch(ctx, i)
	if err != nil {
		return Patch{}, err
	}

	center, _ := s.reader.CellID(i)

	return Patch{
		Center:       center,
		Values:       values,
		Mask:         mask,
		ringDistance: s.reader.RingDistance(),
	}, nil
}

// Patches iterates the snapshot in order. Unlike Dataset.Patches, reads
// can fail mid-iteration on remote storage, so the sequence yields an
// error alongside each patch and stops after the first failure. The
// sequence is restartable.
func (s *SnapshotDataset) Patches(ctx context.Context) iter.Seq2[Patch, error] {
	return func(yield func(Patch, error) bool) {
		for i := 0; i < s.reader.Count(); i++ {
			patch, err := s.Get(ctx, i)

			if !yield(patch, err) {
				return
			}

			if err != nil {
				return
			}
		}
	}
}

// Close releases the snapshot and its underlying blob.
func (s *SnapshotDataset) Close() error {
	if s == nil || s.reader == nil {
		return nil
	}

	return s.reader.Close()
}
