package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSortsByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"report.pdf", "photo.jpg", "notes.txt", "README"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	moved, err := Run(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, moved)

	assert.FileExists(t, filepath.Join(dir, "pdf", "report.pdf"))
	assert.FileExists(t, filepath.Join(dir, "jpg", "photo.jpg"))
	assert.FileExists(t, filepath.Join(dir, "txt", "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "NoExtension", "README"))
}

func TestRunLeavesSubdirectoriesAlone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "existing", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing", "inner.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("y"), 0o644))

	moved, err := Run(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	assert.FileExists(t, filepath.Join(dir, "existing", "inner.txt"))
	assert.FileExists(t, filepath.Join(dir, "txt", "top.txt"))
}

func TestRunCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "txt", "dup.txt"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.txt"), []byte("new"), 0o644))

	moved, err := Run(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	assert.FileExists(t, filepath.Join(dir, "txt", "dup.txt"))
	assert.FileExists(t, filepath.Join(dir, "txt", "dup_1.txt"))

	data, err := os.ReadFile(filepath.Join(dir, "txt", "dup_1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestRunNoExtensionCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "NoExtension"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NoExtension", "Makefile"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Makefile"), []byte("new"), 0o644))

	moved, err := Run(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
	assert.FileExists(t, filepath.Join(dir, "NoExtension", "Makefile_1"))
}

func TestRunMissingDir(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunEmptyDir(t *testing.T) {
	moved, err := Run(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
}
