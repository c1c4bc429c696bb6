package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akeeley/treekit/internal/engine"
	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/perms"
	"github.com/akeeley/treekit/internal/progress"
)

type permsOptions struct {
	workers    int
	noProgress bool
}

func newPermsCmd() *cobra.Command {
	opts := &permsOptions{}

	cmd := &cobra.Command{
		Use:   "perms <root>...",
		Short: "Make every file read-write and every directory traversable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") && cfg.Defaults.Workers != nil {
				opts.workers = *cfg.Defaults.Workers
			}
			return runPerms(args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", engine.DefaultWorkers(), "Number of parallel workers")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")

	return cmd
}

func runPerms(roots []string, opts *permsOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan event.Event, 256)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var bar *progress.Bar
		for ev := range events {
			if ev.Type != event.ItemProcessed {
				continue
			}
			if bar == nil {
				bar = progress.NewCount(!opts.noProgress, ev.Total)
			}
			bar.Set(ev.Files)
			bar.Describe(filepath.Base(ev.Path))
		}
		if bar != nil {
			bar.Clear()
		}
	}()

	result := perms.Run(ctx, perms.Config{
		Roots:   roots,
		Policy:  perms.DefaultPolicy,
		Workers: opts.workers,
		Events:  events,
	})
	close(events)
	wg.Wait()

	if !result.Success {
		return errors.New(result.Message)
	}
	fmt.Println(result.Message)
	return nil
}
