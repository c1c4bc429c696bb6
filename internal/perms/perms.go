// Package perms applies a uniform access-mode policy across whole
// directory trees so later copy and dedupe passes never trip over
// locked-down files.
package perms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/walker"
)

// Policy is the target mode for every item in a tree.
type Policy struct {
	DirMode  os.FileMode
	FileMode os.FileMode
}

// DefaultPolicy makes files read-write and directories traversable for
// everyone. Applying it twice is a no-op.
var DefaultPolicy = Policy{DirMode: 0o777, FileMode: 0o666}

// Config describes one normalization run.
type Config struct {
	Roots   []string
	Policy  Policy
	Workers int
	Events  chan<- event.Event
}

// Result is the terminal state of one run.
type Result struct {
	Processed int64
	Total     int64
	Success   bool
	Message   string
}

type item struct {
	path string
	dir  bool
}

// Run normalizes permissions under every root. It enumerates all items
// up front so progress events carry a stable denominator, then applies
// the policy with the platform strategy. Per-item failures are logged
// and do not abort the run; only cancellation does.
func Run(ctx context.Context, cfg Config) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("permission run panicked", "panic", r)
			result = Result{Success: false, Message: fmt.Sprintf("permission update failed: %v", r)}
		}
	}()

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	items := enumerate(cfg.Roots)
	total := int64(len(items))
	if total == 0 {
		return Result{Success: true, Message: "no items found to update"}
	}

	processed, err := applyPolicy(ctx, cfg, items, total)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{
				Processed: processed,
				Total:     total,
				Success:   false,
				Message:   "permission update cancelled",
			}
		}
		return Result{
			Processed: processed,
			Total:     total,
			Success:   false,
			Message:   fmt.Sprintf("permission update failed: %v", err),
		}
	}

	return Result{
		Processed: processed,
		Total:     total,
		Success:   true,
		Message:   fmt.Sprintf("updated permissions on %d items", processed),
	}
}

// enumerate flattens every root into one list of directories and files.
// Unreadable subtrees are skipped by the walk and simply absent here.
func enumerate(roots []string) []item {
	var items []item
	for _, root := range roots {
		for entry := range walker.Walk(root) {
			items = append(items, item{path: entry.Dir, dir: true})
			for _, f := range entry.Files {
				items = append(items, item{path: f})
			}
		}
	}
	return items
}
