//go:build !windows

package perms

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeeley/treekit/internal/event"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("x"), 0o400))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "mid.txt"), []byte("y"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "leaf.txt"), []byte("z"), 0o444))
	return root
}

func TestRunAppliesPolicy(t *testing.T) {
	root := makeTree(t)

	result := Run(context.Background(), Config{
		Roots:   []string{root},
		Policy:  DefaultPolicy,
		Workers: 4,
	})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, int64(6), result.Total) // 3 directories, 3 files
	assert.Equal(t, result.Total, result.Processed)

	for _, dir := range []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o777), info.Mode().Perm(), dir)
	}
	for _, file := range []string{
		filepath.Join(root, "top.txt"),
		filepath.Join(root, "a", "mid.txt"),
		filepath.Join(root, "a", "b", "leaf.txt"),
	} {
		info, err := os.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o666), info.Mode().Perm(), file)
	}
}

func TestRunIdempotent(t *testing.T) {
	root := makeTree(t)
	cfg := Config{Roots: []string{root}, Policy: DefaultPolicy, Workers: 2}

	first := Run(context.Background(), cfg)
	require.True(t, first.Success)

	second := Run(context.Background(), cfg)
	require.True(t, second.Success)
	assert.Equal(t, first.Total, second.Total)

	info, err := os.Stat(filepath.Join(root, "a", "mid.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o666), info.Mode().Perm())
}

func TestRunCancelled(t *testing.T) {
	root := makeTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, Config{Roots: []string{root}, Policy: DefaultPolicy})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "cancelled")
}

func TestRunEmptyRoots(t *testing.T) {
	result := Run(context.Background(), Config{Policy: DefaultPolicy})
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "no items")
}

func TestRunProgressEvents(t *testing.T) {
	root := makeTree(t)
	events := make(chan event.Event, 64)

	result := Run(context.Background(), Config{
		Roots:   []string{root},
		Policy:  DefaultPolicy,
		Workers: 1,
		Events:  events,
	})
	close(events)
	require.True(t, result.Success)

	var count, last int64
	for ev := range events {
		require.Equal(t, event.ItemProcessed, ev.Type)
		assert.Equal(t, result.Total, ev.Total)
		assert.Greater(t, ev.Files, last)
		last = ev.Files
		count++
	}
	assert.Equal(t, result.Processed, count)
	assert.Equal(t, result.Total, last)
}

func TestRunUnreadableSubdir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("mode bits are not enforced for root")
	}

	root := makeTree(t)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	result := Run(context.Background(), Config{
		Roots:   []string{root},
		Policy:  DefaultPolicy,
		Workers: 2,
	})

	// The locked subtree is skipped by enumeration; the run succeeds over
	// everything else.
	assert.True(t, result.Success, result.Message)
	assert.Equal(t, result.Total, result.Processed)
}

func TestRunItemFailureNonFatal(t *testing.T) {
	root := makeTree(t)
	// Remove a file after enumeration would have seen it by pointing the
	// policy at a path that disappears: simplest stand-in is a dangling
	// symlink, which chmod cannot follow.
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	result := Run(context.Background(), Config{
		Roots:   []string{root},
		Policy:  DefaultPolicy,
		Workers: 2,
	})

	assert.True(t, result.Success, result.Message)
	assert.Equal(t, result.Total, result.Processed)
}
