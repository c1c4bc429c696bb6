// Package walker provides cycle-safe directory tree traversal.
//
// Symlinks are never followed: a symlink appears in Entry.Files even when
// it points at a directory. As a second guard, every directory is resolved
// to its canonical path before being listed, so a tree containing symlink
// cycles (or overlapping roots) still yields each real directory at most
// once and the traversal always terminates.
package walker

import (
	"iter"
	"os"
	"path/filepath"
)

// Entry is one visited directory together with its immediate children,
// already classified as subdirectories or non-directories.
type Entry struct {
	Dir     string
	Subdirs []string
	Files   []string
}

// Walk lazily traverses the tree rooted at root, yielding one Entry per
// reachable directory. Directories that cannot be listed are skipped and
// traversal continues with their siblings; entries that cannot be
// classified (broken symlinks, races with deletion) are skipped as well.
// Every call starts with a fresh visited set.
func Walk(root string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		stack := []string{root}
		visited := make(map[string]struct{})

		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			real := canonical(dir)
			if _, seen := visited[real]; seen {
				continue
			}
			visited[real] = struct{}{}

			entry, ok := list(dir)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
			stack = append(stack, entry.Subdirs...)
		}
	}
}

// list reads a single directory and splits its entries into subdirectories
// and everything else. Returns ok=false if the directory itself cannot be
// listed.
func list(dir string) (Entry, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Dir: dir}
	for _, ent := range entries {
		path := filepath.Join(dir, ent.Name())
		// ReadDir lstats entries, so IsDir is false for symlinks to
		// directories; those land in Files and are never descended.
		if ent.IsDir() {
			e.Subdirs = append(e.Subdirs, path)
		} else {
			e.Files = append(e.Files, path)
		}
	}
	return e, true
}

// canonical resolves symlinks in path for use as a visited-set identity.
// Paths that cannot be resolved fall back to their cleaned form so that an
// unreadable directory still occupies exactly one identity.
func canonical(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return filepath.Clean(path)
}
