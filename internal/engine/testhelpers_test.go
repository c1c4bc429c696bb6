package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestTree populates root with a standard test tree:
//
//	a.txt             (100 bytes)
//	sub/b.txt         (100 bytes)
//	sub/deep/c.txt    (100 bytes)
//	sub/skip.bin      (10 bytes)
func createTestTree(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))

	content := bytes.Repeat([]byte("x"), 100)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deep", "c.txt"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "skip.bin"), bytes.Repeat([]byte("y"), 10), 0o600))
}

// verifyTreeCopy checks that dst contains byte-identical copies of the
// .txt files created by createTestTree.
func verifyTreeCopy(t *testing.T, src, dst string) {
	t.Helper()

	for _, rel := range []string{"a.txt", filepath.Join("sub", "b.txt"), filepath.Join("sub", "deep", "c.txt")} {
		want, err := os.ReadFile(filepath.Join(src, rel))
		require.NoError(t, err, "read src %s", rel)
		got, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err, "read dst %s", rel)
		require.Equal(t, want, got, "content mismatch: %s", rel)
	}
}

// requireNoTmpFiles asserts no in-progress temp files were left behind.
func requireNoTmpFiles(t *testing.T, root string) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		require.NotContains(t, d.Name(), ".treekit-tmp", "leftover tmp file %s", path)
		return nil
	})
	require.NoError(t, err)
}
