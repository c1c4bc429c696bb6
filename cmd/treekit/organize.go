package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akeeley/treekit/internal/organize"
)

func newOrganizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize <directory>",
		Short: "Move top-level files into subfolders named by extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			moved, err := organize.Run(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("moved %d files into subfolders by extension\n", moved)
			return nil
		},
	}
}
