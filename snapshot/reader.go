package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/hexpatch/blobstore"
	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/internal/hash"
)

// Reader reads an immutable patch snapshot.
type Reader struct {
	header *Header
	blob   blobstore.Blob
	data   []byte // Mmapped data or in-memory copy; nil when reading lazily

	lookup  []cell.ID
	offsets []uint64

	verifyChecksum bool
}

// Option defines a configuration option for the Reader.
type Option func(*Reader)

// WithVerifyChecksum enables full checksum verification on open. When the
// blob is not memory-mapped this forces the whole snapshot into memory.
func WithVerifyChecksum(verify bool) Option {
	return func(r *Reader) {
		r.verifyChecksum = verify
	}
}

// Open opens a patch snapshot from a blob. Memory-mapped blobs are read
// zero-copy; other blobs keep only the lookup and offset tables in memory
// and fetch patch blocks on demand.
//
// The Reader takes ownership of the blob and closes it on Close.
func Open(ctx context.Context, blob blobstore.Blob, opts ...Option) (*Reader, error) {
	r := &Reader{blob: blob}

	for _, opt := range opts {
		opt(r)
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		r.data = data
	} else if r.verifyChecksum {
		// Verification needs the full body anyway
		data := make([]byte, blob.Size())
		if _, err := blob.ReadAt(ctx, data, 0); err != nil {
			return nil, err
		}
		r.data = data
	}

	// Parse Header
	var header *Header
	var err error
	if r.data != nil {
		header, err = DecodeHeader(r.data)
	} else {
		buf := make([]byte, HeaderSize)
		if _, err := blob.ReadAt(ctx, buf, 0); err != nil {
			return nil, fmt.Errorf("failed to read snapshot header: %w", err)
		}
		header, err = DecodeHeader(buf)
	}
	if err != nil {
		return nil, err
	}
	r.header = header

	if int(header.Side) != 2*int(header.RingDistance)+2 {
		return nil, fmt.Errorf("ring distance %d and grid side %d disagree", header.RingDistance, header.Side)
	}

	size := uint64(blob.Size())
	if r.data != nil {
		size = uint64(len(r.data))
	}
	if header.TotalSize < HeaderSize || size < header.TotalSize {
		return nil, errors.New("file too short for snapshot")
	}

	count := uint64(header.Count)
	if header.LookupOffset+count*8 > size || header.OffsetsOffset+(count+1)*8 > size {
		return nil, errors.New("file too short for lookup tables")
	}

	if r.verifyChecksum && header.Checksum != 0 {
		body := r.data[HeaderSize:header.TotalSize]
		if sum := hash.CRC32C(body); sum != header.Checksum {
			return nil, fmt.Errorf("checksum mismatch: expected %x, got %x", header.Checksum, sum)
		}
	}

	// Set up the lookup tables. On mapped data these are zero-copy views;
	// lazy readers decode a private copy once.
	if r.data != nil {
		if count > 0 {
			lData := r.data[header.LookupOffset : header.LookupOffset+count*8]
			r.lookup = unsafe.Slice((*cell.ID)(unsafe.Pointer(&lData[0])), count)
		}
		oData := r.data[header.OffsetsOffset : header.OffsetsOffset+(count+1)*8]
		r.offsets = unsafe.Slice((*uint64)(unsafe.Pointer(&oData[0])), count+1)
	} else {
		tables := make([]byte, (2*count+1)*8)
		if _, err := blob.ReadAt(ctx, tables, int64(header.LookupOffset)); err != nil {
			return nil, fmt.Errorf("failed to read lookup tables: %w", err)
		}
		r.lookup = make([]cell.ID, count)
		for i := range r.lookup {
			r.lookup[i] = cell.ID(binary.LittleEndian.Uint64(tables[i*8:]))
		}
		r.offsets = make([]uint64, count+1)
		offsetsBase := count * 8
		for i := range r.offsets {
			r.offsets[i] = binary.LittleEndian.Uint64(tables[offsetsBase+uint64(i)*8:])
		}
	}

	return r, nil
}

// Count returns the number of patches in the snapshot.
func (r *Reader) Count() int {
	return int(r.header.Count)
}

// RingDistance returns the neighborhood radius the patches were built with.
func (r *Reader) RingDistance() int {
	return int(r.header.RingDistance)
}

// Side returns the patch grid side, 2*RingDistance()+2.
func (r *Reader) Side() int {
	return int(r.header.Side)
}

// Compression returns the block compression the snapshot was written with.
func (r *Reader) Compression() CompressionType {
	return CompressionType(r.header.Compression)
}

// CellID returns the center cell stored at position i.
func (r *Reader) CellID(i int) (cell.ID, bool) {
	if i < 0 || i >= len(r.lookup) {
		return 0, false
	}
	return r.lookup[i], true
}

// CellIDs returns the center cells in slot order. The returned slice is
// shared with the reader and must not be modified.
func (r *Reader) CellIDs() []cell.ID {
	return r.lookup
}

// Patch reads and decodes the patch at position i, returning the side*side
// slot grid in row-major order and its presence mask.
func (r *Reader) Patch(ctx context.Context, i int) ([]int32, []uint64, error) {
	if i < 0 || i >= int(r.header.Count) {
		return nil, nil, fmt.Errorf("patch %d out of range [0, %d)", i, r.header.Count)
	}

	start := r.offsets[i]
	end := r.offsets[i+1]
	if end < start {
		return nil, nil, errors.New("corrupt patch offsets")
	}

	var block []byte
	if r.data != nil {
		blockStart := r.header.BlocksOffset + start
		blockEnd := r.header.BlocksOffset + end
		if uint64(len(r.data)) < blockEnd {
			return nil, nil, errors.New("file too short for patch block")
		}
		block = r.data[blockStart:blockEnd]
	} else {
		block = make([]byte, end-start)
		if _, err := r.blob.ReadAt(ctx, block, int64(r.header.BlocksOffset+start)); err != nil {
			return nil, nil, err
		}
	}

	payload, err := decompressBlock(block, CompressionType(r.header.Compression))
	if err != nil {
		return nil, nil, err
	}

	return decodePatchPayload(payload, int(r.header.Side))
}

// Close releases the underlying blob. Close is idempotent.
func (r *Reader) Close() error {
	if r.blob == nil {
		return nil
	}

	blob := r.blob
	r.blob = nil

	return blob.Close()
}
