package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	h1, err := HashFile(path)
	require.NoError(t, err)
	assert.Len(t, h1.String(), Size*2)

	// Same content should produce the same digest.
	path2 := filepath.Join(dir, "test2.txt")
	require.NoError(t, os.WriteFile(path2, []byte("hello world"), 0o644))
	h2, err := HashFile(path2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// Different content should produce a different digest.
	path3 := filepath.Join(dir, "test3.txt")
	require.NoError(t, os.WriteFile(path3, []byte("different content"), 0o644))
	h3, err := HashFile(path3)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashFileLargerThanChunk(t *testing.T) {
	dir := t.TempDir()

	// Spans multiple read chunks with a ragged tail.
	data := bytes.Repeat([]byte("0123456789abcdef"), 150000) // ~2.3 MiB
	data = append(data, 'x')

	path := filepath.Join(dir, "big.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	h1, err := HashFile(path)
	require.NoError(t, err)

	path2 := filepath.Join(dir, "big2.bin")
	require.NoError(t, os.WriteFile(path2, data, 0o644))
	h2, err := HashFile(path2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	h, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, h.String())
}

func TestHashFileNotExist(t *testing.T) {
	_, err := HashFile("/nonexistent/file")
	assert.Error(t, err)
}
