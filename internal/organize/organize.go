// Package organize sorts the top level of a directory into subfolders
// named by file extension.
package organize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// noExtFolder holds files whose names carry no extension.
const noExtFolder = "NoExtension"

// Run moves every top-level file in dir into a subfolder named after
// its extension ("pdf", "jpg", ...), creating folders as needed. Name
// collisions get a numeric suffix. Subdirectories are left alone, and
// per-file failures are logged and skipped. Returns the number of files
// moved.
func Run(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var moved int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		folder := ext
		if folder == "" {
			folder = noExtFolder
		}

		destDir := filepath.Join(dir, folder)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			slog.Warn("failed to create extension folder", "dir", destDir, "error", err)
			continue
		}

		src := filepath.Join(dir, name)
		dst := uniquePath(destDir, name, ext)
		if err := os.Rename(src, dst); err != nil {
			slog.Warn("failed to move file", "path", src, "error", err)
			continue
		}
		moved++
		slog.Debug("moved file", "from", src, "to", dst)
	}
	return moved, nil
}

// uniquePath returns dir/name, appending _1, _2, ... before the
// extension until the name is free.
func uniquePath(dir, name, ext string) string {
	target := filepath.Join(dir, name)
	if _, err := os.Lstat(target); err != nil {
		return target
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", stem, i)
		if ext != "" {
			candidate += "." + ext
		}
		target = filepath.Join(dir, candidate)
		if _, err := os.Lstat(target); err != nil {
			return target
		}
	}
}
