package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, root string) map[string]Entry {
	t.Helper()
	entries := make(map[string]Entry)
	for e := range Walk(root) {
		_, dup := entries[e.Dir]
		require.False(t, dup, "directory %s yielded twice", e.Dir)
		entries[e.Dir] = e
	}
	return entries
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0o644))

	entries := collect(t, root)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, entries[root].Files)
	assert.Equal(t, []string{filepath.Join(root, "sub")}, entries[root].Subdirs)
	assert.Equal(t, []string{filepath.Join(root, "sub", "b.txt")}, entries[filepath.Join(root, "sub")].Files)
	assert.Empty(t, entries[filepath.Join(root, "sub", "deep")].Files)
}

func TestWalkSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Symlink back up to the root: must not loop.
	require.NoError(t, os.Symlink(root, filepath.Join(sub, "loop")))

	entries := collect(t, root)
	require.Len(t, entries, 2)

	// The symlink is classified as a file, never descended.
	assert.Equal(t, []string{filepath.Join(sub, "loop")}, entries[sub].Files)
}

func TestWalkDuplicateIdentity(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "f"), []byte("x"), 0o644))

	// Walking through a symlinked root resolves to the same identity.
	alias := filepath.Join(root, "alias")
	require.NoError(t, os.Symlink(real, alias))

	var n int
	for range Walk(alias) {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestWalkUnlistableDirSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("mode bits are not enforced for root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	open := filepath.Join(root, "open")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(open, 0o755))

	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	entries := collect(t, root)

	// The unreadable directory is skipped, its sibling still visited.
	assert.Contains(t, entries, root)
	assert.Contains(t, entries, open)
	assert.NotContains(t, entries, locked)
}

func TestWalkRestartable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	first := collect(t, root)
	second := collect(t, root)
	assert.Equal(t, len(first), len(second))
}

func TestWalkLazy(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755))

	// Breaking early must stop the traversal cleanly.
	var n int
	for range Walk(root) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
