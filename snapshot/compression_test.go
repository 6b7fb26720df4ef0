package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressBlock_LZ4(t *testing.T) {
	// Test with compressible data (repeated patterns)
	data := bytes.Repeat([]byte("hello world! "), 1000)

	compressed, err := compressBlock(data, CompressionLZ4)
	require.NoError(t, err)

	// Should be significantly smaller
	assert.Less(t, len(compressed), len(data)/2, "LZ4 should compress repeated data well")

	// Decompress and verify
	decompressed, err := decompressBlock(compressed, CompressionLZ4)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestCompressBlock_ZSTD(t *testing.T) {
	// Test with compressible data (repeated patterns)
	data := bytes.Repeat([]byte("hello world! "), 1000)

	compressed, err := compressBlock(data, CompressionZSTD)
	require.NoError(t, err)

	// Should be significantly smaller
	assert.Less(t, len(compressed), len(data)/2, "ZSTD should compress repeated data well")

	// Decompress and verify
	decompressed, err := decompressBlock(compressed, CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestCompressBlock_NoCompression(t *testing.T) {
	data := []byte("small data that won't benefit from compression")

	framed, err := compressBlock(data, CompressionNone)
	require.NoError(t, err)

	// Framed but stored raw
	assert.Equal(t, blockHeaderSize+len(data), len(framed))

	decompressed, err := decompressBlock(framed, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestCompressBlock_IncompressibleData(t *testing.T) {
	// Random-ish data that doesn't compress well
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i * 17 % 256)
	}

	compressed, err := compressBlock(data, CompressionLZ4)
	require.NoError(t, err)

	// Should still be decompressible
	decompressed, err := decompressBlock(compressed, CompressionLZ4)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestDecompressBlock_Truncated(t *testing.T) {
	data := bytes.Repeat([]byte("patch data "), 100)

	compressed, err := compressBlock(data, CompressionZSTD)
	require.NoError(t, err)

	_, err = decompressBlock(compressed[:4], CompressionZSTD)
	assert.Error(t, err)

	_, err = decompressBlock(compressed[:len(compressed)/2], CompressionZSTD)
	assert.Error(t, err)
}

func BenchmarkCompressBlock(b *testing.B) {
	data := bytes.Repeat([]byte("benchmark data for compression testing "), 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = compressBlock(data, CompressionLZ4)
	}
}

func BenchmarkCompressBlock_ZSTD(b *testing.B) {
	data := bytes.Repeat([]byte("benchmark data for compression testing "), 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = compressBlock(data, CompressionZSTD)
	}
}

func BenchmarkDecompressBlock(b *testing.B) {
	data := bytes.Repeat([]byte("benchmark data for compression testing "), 1000)
	compressed, _ := compressBlock(data, CompressionLZ4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = decompressBlock(compressed, CompressionLZ4)
	}
}
