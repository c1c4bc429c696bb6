package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/akeeley/treekit/internal/config"
	"github.com/akeeley/treekit/internal/logging"
)

var version = "dev"

var (
	verbose bool
	quiet   bool
	logPath string

	logFile *os.File
	cfg     config.Config
)

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()

	root := &cobra.Command{
		Use:           "treekit",
		Short:         "Bulk file tree operations: backup, permissions, dedupe, organize",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			if !cmd.Flags().Changed("log-file") && cfg.Defaults.LogFile != nil {
				logPath = *cfg.Defaults.LogFile
			}
			return setupLogging()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().StringVar(&logPath, "log-file", "", "append structured JSON logs to this file")

	root.AddCommand(newBackupCmd())
	root.AddCommand(newPermsCmd())
	root.AddCommand(newDedupeCmd())
	root.AddCommand(newOrganizeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "treekit: %v\n", err)
		return 1
	}
	return 0
}

func setupLogging() error {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	} else if !quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	if logPath != "" {
		lf, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = lf
		jsonHandler := slog.NewJSONHandler(logging.BestEffort(lf), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = logging.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return nil
}
