package snapshot

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/internal/hash"
)

// Writer builds a patch snapshot.
//
// Patches are buffered (compressed) in memory and laid out on Flush, so
// snapshots can be streamed to non-seekable sinks such as cloud blob
// uploads. Add must be called in slot order: position i in the snapshot is
// the i-th Add call.
type Writer struct {
	w            io.Writer
	ringDistance int
	side         int
	compression  CompressionType
	ids          []cell.ID
	blocks       [][]byte // Framed patch payloads, compressed per block
}

// NewWriter creates a new snapshot writer for patches with the given ring
// distance. The grid side is derived as 2*ringDistance+2.
func NewWriter(w io.Writer, ringDistance int, compression CompressionType) *Writer {
	return &Writer{
		w:            w,
		ringDistance: ringDistance,
		side:         2*ringDistance + 2,
		compression:  compression,
	}
}

// Add appends one patch. values holds the side*side slot grid in row-major
// order and mask the matching presence bitmap.
func (w *Writer) Add(id cell.ID, values []int32, mask []uint64) error {
	if len(values) != w.side*w.side {
		return fmt.Errorf("values length mismatch: got %d, want %d", len(values), w.side*w.side)
	}
	if len(mask) != maskWords(w.side) {
		return fmt.Errorf("mask length mismatch: got %d, want %d", len(mask), maskWords(w.side))
	}

	block, err := compressBlock(encodePatchPayload(w.side, values, mask), w.compression)
	if err != nil {
		return err
	}

	w.ids = append(w.ids, id)
	w.blocks = append(w.blocks, block)
	return nil
}

// Count returns the number of patches added so far.
func (w *Writer) Count() int {
	return len(w.ids)
}

// Flush writes the snapshot to the underlying writer. The body checksum
// is computed up front from the buffered blocks, so non-seekable sinks
// such as cloud blob uploads still get verifiable snapshots.
// The context can be used for cancellation while blocks are written out.
func (w *Writer) Flush(ctx context.Context) error {
	count := uint32(len(w.ids))

	lookupOffset := uint64(HeaderSize)
	offsetsOffset := lookupOffset + uint64(count)*8
	blocksOffset := offsetsOffset + uint64(count+1)*8

	offsets := make([]uint64, count+1)
	currentOffset := uint64(0)
	for i, b := range w.blocks {
		offsets[i] = currentOffset
		currentOffset += uint64(len(b))
	}
	offsets[count] = currentOffset

	lookupBlob := make([]byte, 0, count*8)
	for _, id := range w.ids {
		lookupBlob = binary.LittleEndian.AppendUint64(lookupBlob, uint64(id))
	}

	offsetsBlob := make([]byte, 0, (count+1)*8)
	for _, off := range offsets {
		offsetsBlob = binary.LittleEndian.AppendUint64(offsetsBlob, off)
	}

	// Checksum covers the whole body: lookup, offsets, blocks.
	crc := hash.CRC32C(lookupBlob)
	crc = hash.Update(crc, offsetsBlob)
	for _, b := range w.blocks {
		crc = hash.Update(crc, b)
	}

	header := &Header{
		Magic:         MagicNumber,
		Version:       Version,
		Count:         count,
		RingDistance:  uint16(w.ringDistance),
		Side:          uint16(w.side),
		Compression:   uint8(w.compression),
		LookupOffset:  lookupOffset,
		OffsetsOffset: offsetsOffset,
		BlocksOffset:  blocksOffset,
		TotalSize:     blocksOffset + currentOffset,
		Checksum:      crc,
	}

	bw := bufio.NewWriter(w.w)

	if _, err := bw.Write(header.Encode()); err != nil {
		return err
	}

	if _, err := bw.Write(lookupBlob); err != nil {
		return err
	}

	if _, err := bw.Write(offsetsBlob); err != nil {
		return err
	}

	for i, b := range w.blocks {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}

	return bw.Flush()
}
