package snapshot

import (
	"encoding/binary"
	"errors"
)

const (
	MagicNumber = 0x48585053 // "HXPS"
	Version     = 1
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
)

// Header describes the layout of a patch snapshot file.
// It is stored at the beginning of the file.
type Header struct {
	Magic         uint32
	Version       uint32
	Count         uint32
	RingDistance  uint16
	Side          uint16
	Compression   uint8
	_             [7]byte // Padding to align offsets to 8 bytes
	LookupOffset  uint64  // Offset to start of the cell ID lookup (Count uint64 values, slot order)
	OffsetsOffset uint64  // Offset to start of patch offsets (Count+1 uint64 values, relative to BlocksOffset)
	BlocksOffset  uint64  // Offset to start of the patch blocks
	TotalSize     uint64  // Total file size in bytes
	Checksum      uint32  // CRC32C of the body (everything after header)
	_             [4]byte // Reserved for future use
}

// Size of the header in bytes.
const HeaderSize = 4 + 4 + 4 + 2 + 2 + 1 + 7 + 8 + 8 + 8 + 8 + 4 + 4

func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:], h.Version)
	binary.LittleEndian.PutUint32(buf[8:], h.Count)
	binary.LittleEndian.PutUint16(buf[12:], h.RingDistance)
	binary.LittleEndian.PutUint16(buf[14:], h.Side)
	buf[16] = h.Compression
	// Padding [17:24]
	binary.LittleEndian.PutUint64(buf[24:], h.LookupOffset)
	binary.LittleEndian.PutUint64(buf[32:], h.OffsetsOffset)
	binary.LittleEndian.PutUint64(buf[40:], h.BlocksOffset)
	binary.LittleEndian.PutUint64(buf[48:], h.TotalSize)
	binary.LittleEndian.PutUint32(buf[56:], h.Checksum)
	return buf
}

func DecodeHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, errors.New("buffer too small for header")
	}
	h := &Header{}
	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	if h.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint32(buf[4:])
	if h.Version != Version {
		return nil, ErrInvalidVersion
	}
	h.Count = binary.LittleEndian.Uint32(buf[8:])
	h.RingDistance = binary.LittleEndian.Uint16(buf[12:])
	h.Side = binary.LittleEndian.Uint16(buf[14:])
	h.Compression = buf[16]
	// Padding [17:24]
	h.LookupOffset = binary.LittleEndian.Uint64(buf[24:])
	h.OffsetsOffset = binary.LittleEndian.Uint64(buf[32:])
	h.BlocksOffset = binary.LittleEndian.Uint64(buf[40:])
	h.TotalSize = binary.LittleEndian.Uint64(buf[48:])
	h.Checksum = binary.LittleEndian.Uint32(buf[56:])
	return h, nil
}

// maskWords returns the number of uint64 words in the presence mask of a
// patch with the given grid side.
func maskWords(side int) int {
	return (side*side + 63) / 64
}

// payloadSize returns the size in bytes of an uncompressed patch payload:
// side*side int32 slot values followed by the presence mask words.
func payloadSize(side int) int {
	return side*side*4 + maskWords(side)*8
}

// encodePatchPayload serializes slot values and the presence mask into the
// uncompressed on-disk payload layout.
func encodePatchPayload(side int, values []int32, mask []uint64) []byte {
	buf := make([]byte, payloadSize(side))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	base := side * side * 4
	for i, w := range mask {
		binary.LittleEndian.PutUint64(buf[base+i*8:], w)
	}
	return buf
}

// decodePatchPayload deserializes an uncompressed patch payload back into
// slot values and the presence mask.
func decodePatchPayload(payload []byte, side int) ([]int32, []uint64, error) {
	if len(payload) != payloadSize(side) {
		return nil, nil, errors.New("patch payload size mismatch")
	}
	values := make([]int32, side*side)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
	}
	base := side * side * 4
	mask := make([]uint64, maskWords(side))
	for i := range mask {
		mask[i] = binary.LittleEndian.Uint64(payload[base+i*8:])
	}
	return values, mask, nil
}
