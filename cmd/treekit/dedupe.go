package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/akeeley/treekit/internal/dupes"
	"github.com/akeeley/treekit/internal/engine"
	"github.com/akeeley/treekit/internal/filter"
)

type dedupeOptions struct {
	minSizeStr string
	extensions []string
	workers    int
	reportPath string
	delete     bool
	moveTo     string
}

func newDedupeCmd() *cobra.Command {
	opts := &dedupeOptions{
		minSizeStr: "1",
	}

	cmd := &cobra.Command{
		Use:   "dedupe <directory>",
		Short: "Find files with identical content, then report, delete, or move them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("min-size") && cfg.Dedupe.MinSize != nil {
				opts.minSizeStr = *cfg.Dedupe.MinSize
			}
			if !cmd.Flags().Changed("ext") && len(cfg.Dedupe.Extensions) > 0 {
				opts.extensions = cfg.Dedupe.Extensions
			}
			if !cmd.Flags().Changed("workers") && cfg.Defaults.Workers != nil {
				opts.workers = *cfg.Defaults.Workers
			}
			return runDedupe(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.minSizeStr, "min-size", "m", opts.minSizeStr, "Minimum file size (e.g. 100, 1K, 10M)")
	cmd.Flags().StringSliceVarP(&opts.extensions, "ext", "e", nil, `Only consider these extensions (e.g. ".jpg,.png")`)
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", engine.DefaultWorkers(), "Number of parallel hash workers")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a JSON report of all duplicate groups to this path")
	cmd.Flags().BoolVar(&opts.delete, "delete", false, "Delete every duplicate except the first in each group")
	cmd.Flags().StringVar(&opts.moveTo, "move-to", "", "Move every duplicate except the first into this directory")

	return cmd
}

func runDedupe(dir string, opts *dedupeOptions) error {
	if opts.delete && opts.moveTo != "" {
		return errors.New("--delete and --move-to are mutually exclusive")
	}

	minSize, err := filter.ParseSize(opts.minSizeStr)
	if err != nil {
		return fmt.Errorf("invalid --min-size: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	groups, err := dupes.Find(ctx, dir, dupes.Options{
		MinSize:    minSize,
		Extensions: filter.Extensions(opts.extensions),
		Workers:    opts.workers,
	})
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Println("no duplicates found")
		return nil
	}
	fmt.Printf("found %d duplicate groups (%d files)\n", len(groups), groups.TotalFiles())

	if opts.reportPath != "" {
		if err := dupes.WriteReport(opts.reportPath, groups); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", opts.reportPath)
	}

	switch {
	case opts.delete:
		removed := dupes.Delete(groups)
		fmt.Printf("deleted %s duplicate files\n", humanize.Comma(int64(removed)))
	case opts.moveTo != "":
		moved, err := dupes.Move(groups, opts.moveTo)
		if err != nil {
			return err
		}
		fmt.Printf("moved %s duplicate files to %s\n", humanize.Comma(int64(moved)), opts.moveTo)
	default:
		for digest, paths := range groups {
			fmt.Printf("%s:\n", digest)
			for _, p := range paths {
				fmt.Printf("  %s\n", p)
			}
		}
	}
	return nil
}
