// Package engine plans and executes verified parallel tree copies.
//
// A run has three phases: planning (traverse the source, mirror its
// directories, collect tasks), execution (a bounded worker pool drains the
// task list, each worker folding results into one lock-guarded tracker),
// and the terminal report. Cancellation is cooperative: the context is
// polled before every task, in-flight copies are never interrupted, and
// results that land after cancellation still count.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/filter"
	"github.com/akeeley/treekit/internal/stats"
)

// Config describes one copy operation.
type Config struct {
	Src      string
	Dst      string
	Patterns filter.Patterns
	Verify   bool
	Workers  int // 0 means clamp(2, 8, 2×NumCPU)
	Events   chan<- event.Event
}

// Result is the terminal outcome of a copy operation, emitted exactly once
// after all progress events. FilesCopied always reflects tasks that
// individually succeeded; partial success is preserved, never rolled back.
type Result struct {
	FilesCopied int64
	ErrorCount  int64
	Mismatches  int64
	Cancelled   bool
	Success     bool
	Message     string
	Stats       stats.Snapshot
}

// DefaultWorkers returns the worker pool size for a zero Workers config.
func DefaultWorkers() int {
	return clamp(2, 8, 2*runtime.NumCPU())
}

func clamp(lo, hi, n int) int {
	return max(lo, min(hi, n))
}

// Run executes a copy operation, blocking until complete. Every per-item
// failure is folded into the counters; only planning-time conditions (an
// empty plan) or an unexpected internal failure produce a failed run with
// zero work done.
func Run(ctx context.Context, cfg Config) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("copy run failed", "panic", r)
			result = Result{Success: false, Message: fmt.Sprintf("copy failed: %v", r)}
		}
	}()

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	tracker := stats.New()

	event.Emit(cfg.Events, event.Event{Type: event.PlanStarted, Path: cfg.Src})
	plan, err := BuildPlan(ctx, cfg.Src, cfg.Dst, cfg.Patterns)
	if err != nil {
		return Result{Cancelled: true, Success: false, Message: "copy cancelled by user"}
	}
	if len(plan.Tasks) == 0 {
		msg := fmt.Sprintf("no files found to copy in %s", cfg.Src)
		slog.Info(msg)
		return Result{Success: false, Message: msg}
	}

	tracker.SetTotals(int64(len(plan.Tasks)), plan.TotalBytes)
	event.Emit(cfg.Events, event.Event{
		Type:  event.PlanComplete,
		Files: int64(len(plan.Tasks)),
		Total: plan.TotalBytes,
	})
	slog.Info("copy plan built",
		"src", cfg.Src, "dst", cfg.Dst,
		"files", len(plan.Tasks), "bytes", plan.TotalBytes, "workers", workers)

	p := newPool(workers, cfg.Verify, tracker, cfg.Events)
	p.run(ctx, plan.Tasks)
	p.close()

	snap := tracker.Snapshot()
	result = Result{
		FilesCopied: snap.FilesCopied,
		ErrorCount:  snap.ErrorCount,
		Mismatches:  snap.VerifyFailures,
		Cancelled:   ctx.Err() != nil,
		Stats:       snap,
	}

	switch {
	case result.Cancelled:
		result.Message = "copy cancelled by user"
	case result.ErrorCount == 0:
		result.Success = true
		result.Message = fmt.Sprintf("copied %d files (%d bytes)", snap.FilesCopied, snap.BytesCopied)
	default:
		result.Message = fmt.Sprintf("copied %d files with %d errors (%d digest mismatches)",
			snap.FilesCopied, snap.ErrorCount, snap.VerifyFailures)
	}

	slog.Info("copy finished", "success", result.Success, "stats", snap.String())
	return result
}
