package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hoverbar/hoverbar/internal/database"
	"github.com/hoverbar/hoverbar/internal/reporter"
)

type historyOptions struct {
	limit  int
	since  string
	format string
	clear  bool
}

func newHistoryCmd(a *app) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded bar transitions",
		Long: `Show bar transitions recorded by a run started with --journal.

Examples:
  # The 20 most recent transitions
  hoverbar history

  # Everything from the last hour as JSON
  hoverbar history --since 1h --limit 1000 --format json

  # Empty the journal
  hoverbar history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, a, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20,
		"Maximum number of transitions to show")
	cmd.Flags().StringVar(&opts.since, "since", "",
		"Only show transitions from the last duration (e.g., 30m, 2h)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&opts.clear, "clear", false,
		"Remove all recorded transitions")

	return cmd
}

func runHistory(cmd *cobra.Command, a *app, opts historyOptions) error {
	var window time.Duration
	if opts.since != "" {
		d, err := time.ParseDuration(opts.since)
		if err != nil || d <= 0 {
			return newUsageError(errors.Errorf("invalid --since duration: %q", opts.since))
		}
		window = d
	}
	if opts.limit <= 0 {
		return newUsageError(errors.Errorf("--limit must be positive, got %d", opts.limit))
	}

	cfg, err := a.loadConfig(cmd.Flags(), false)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Journal.Path)
	if err != nil {
		return errors.Wrap(err, "failed to open journal")
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return errors.Wrap(err, "failed to initialize journal")
	}
	repo := database.NewRepository(db)

	if opts.clear {
		if err := repo.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared")
		return nil
	}

	rep := reporter.New(repo)
	history, err := rep.GenerateHistory(opts.limit, window)
	if err != nil {
		return err
	}

	out, err := rep.Format(history, opts.format)
	if err != nil {
		return newUsageError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
