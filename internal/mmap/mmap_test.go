package mmap

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	f, err := os.CreateTemp(t.TempDir(), "mmap_test")
	require.NoError(t, err)

	_, err = f.Write(content)
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	// ReadAt
	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7) // "Mmap!"
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	// ReadAt out of bounds
	buf2 := make([]byte, 10)
	n, err = m.ReadAt(buf2, 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// ReadAt partial
	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7) // "Mmap!" (5 bytes)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "Mmap!", string(buf3[:n]))

	// ReadAt negative offset
	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMmap_Region(t *testing.T) {
	content := []byte("header|block1|block2|footer")
	f, err := os.CreateTemp(t.TempDir(), "mmap_test_region")
	require.NoError(t, err)

	_, err = f.Write(content)
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	defer m.Close()

	r, err := m.Region(7, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, r.Size())
	assert.Equal(t, "block1", string(r.Bytes()))

	require.NoError(t, r.Advise(AccessSequential))

	// Out of bounds regions are rejected.
	_, err = m.Region(-1, 5)
	assert.Equal(t, ErrOutOfBounds, err)

	_, err = m.Region(20, 100)
	assert.Equal(t, ErrOutOfBounds, err)
}

func TestMmap_Close(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "mmap_test_close")
	require.NoError(t, err)

	_, err = f.Write([]byte("data"))
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)

	r, err := m.Region(0, 4)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent

	assert.Nil(t, m.Bytes())
	assert.Nil(t, r.Bytes())

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, ErrClosed, err)

	_, err = m.Region(0, 1)
	assert.Equal(t, ErrClosed, err)
}

func TestMmap_EmptyFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "mmap_test_empty")
	require.NoError(t, err)
	f.Close()

	m, err := Open(f.Name())
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
}
