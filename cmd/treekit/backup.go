package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/akeeley/treekit/internal/engine"
	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/filter"
	"github.com/akeeley/treekit/internal/perms"
	"github.com/akeeley/treekit/internal/progress"
)

type backupOptions struct {
	patterns   []string
	verify     bool
	workers    int
	fixPerms   bool
	noProgress bool
}

func newBackupCmd() *cobra.Command {
	opts := &backupOptions{
		patterns: []string{"*"},
	}

	cmd := &cobra.Command{
		Use:   "backup <source> <destination>",
		Short: "Copy a filtered tree to a destination, optionally verifying each file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("verify") && cfg.Defaults.Verify != nil {
				opts.verify = *cfg.Defaults.Verify
			}
			if !cmd.Flags().Changed("workers") && cfg.Defaults.Workers != nil {
				opts.workers = *cfg.Defaults.Workers
			}
			return runBackup(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.patterns, "patterns", "p", opts.patterns, `Suffix patterns to include (e.g. "*.jpg"); "*" includes everything`)
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Re-hash every copy and compare against the source")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", engine.DefaultWorkers(), "Number of parallel copy workers")
	cmd.Flags().BoolVar(&opts.fixPerms, "fix-perms", false, "Normalize source permissions before copying")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")

	return cmd
}

func runBackup(src, dst string, opts *backupOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.fixPerms {
		result := perms.Run(ctx, perms.Config{
			Roots:   []string{src},
			Policy:  perms.DefaultPolicy,
			Workers: opts.workers,
		})
		if !result.Success {
			return errors.New(result.Message)
		}
	}

	events := make(chan event.Event, 256)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		renderBackup(events, !opts.noProgress)
	}()

	result := engine.Run(ctx, engine.Config{
		Src:      src,
		Dst:      dst,
		Patterns: filter.Patterns(opts.patterns),
		Verify:   opts.verify,
		Workers:  opts.workers,
		Events:   events,
	})
	close(events)
	wg.Wait()

	if !result.Success {
		return errors.New(result.Message)
	}
	fmt.Println(result.Message)
	return nil
}

// renderBackup consumes the event stream and drives a live byte bar.
// The plan-complete event carries the denominator, so the bar is a
// spinner until planning finishes.
func renderBackup(events <-chan event.Event, show bool) {
	bar := progress.NewBytes(false, 0)
	for ev := range events {
		switch ev.Type {
		case event.PlanComplete:
			bar = progress.NewBytes(show, ev.Total)
		case event.FileCopied:
			bar.Set(ev.Bytes)
			bar.Describe(fmt.Sprintf("%s %s/s", filepath.Base(ev.Path), humanize.IBytes(uint64(ev.Rate))))
		case event.FileFailed:
			bar.Describe(fmt.Sprintf("failed: %s", filepath.Base(ev.Path)))
		}
	}
	bar.Clear()
}
