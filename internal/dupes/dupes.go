// Package dupes finds files with identical content by digest and offers
// report, delete, and move actions over the resulting groups.
package dupes

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/filter"
	"github.com/akeeley/treekit/internal/hasher"
	"github.com/akeeley/treekit/internal/walker"
)

// Options narrows which files participate in detection.
type Options struct {
	MinSize    int64
	Extensions filter.Extensions
	Workers    int
	Events     chan<- event.Event
}

// Groups maps a content digest (hex) to the paths sharing it. Only
// digests with two or more paths are kept.
type Groups map[string][]string

// Find walks dir, hashes every candidate file across a bounded pool,
// and returns the groups of paths whose digests collide. A colliding
// digest is treated as identity; files that cannot be read are logged
// and excluded. Paths within a group are sorted for stable output.
func Find(ctx context.Context, dir string, opts Options) (Groups, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	var (
		mu   sync.Mutex
		seen = make(map[string][]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

walk:
	for entry := range walker.Walk(dir) {
		for _, path := range entry.Files {
			if gctx.Err() != nil {
				break walk
			}
			if !opts.Extensions.Match(path) {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				slog.Warn("failed to stat candidate", "path", path, "error", err)
				continue
			}
			if !info.Mode().IsRegular() || info.Size() < opts.MinSize {
				continue
			}
			g.Go(func() error {
				digest, err := hasher.HashFile(path)
				if err != nil {
					slog.Warn("failed to hash candidate", "path", path, "error", err)
					return nil
				}
				key := digest.String()
				mu.Lock()
				seen[key] = append(seen[key], path)
				dup := len(seen[key]) > 1
				mu.Unlock()
				if dup {
					event.Emit(opts.Events, event.Event{
						Type: event.DuplicateFound,
						Path: path,
						Size: info.Size(),
					})
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups := make(Groups)
	for key, paths := range seen {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups[key] = paths
	}
	return groups, nil
}

// TotalFiles counts every path across all groups.
func (g Groups) TotalFiles() int {
	var n int
	for _, paths := range g {
		n += len(paths)
	}
	return n
}
