package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"annconv/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the conversion run log",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [RUN_ID]",
		Short: "List recorded runs, or the files of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunLog(ctx, func(store *runlog.Store) error {
				if len(args) == 1 {
					return printRunFiles(cmd, store, args[0])
				}
				return printRuns(cmd, store, limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 shows all)")
	return cmd
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunLog(ctx, func(store *runlog.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
				return nil
			})
		},
	}
}

func withRunLog(ctx *commandContext, fn func(*runlog.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.RunLog.Enabled {
		return fmt.Errorf("run log is disabled in the configuration")
	}
	store, err := runlog.Open(cfg.RunLog.Dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func printRuns(cmd *cobra.Command, store *runlog.Store, limit int) error {
	summaries, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		finished := "running"
		if summary.FinishedAt != nil {
			finished = formatTimestamp(*summary.FinishedAt)
		}
		rows = append(rows, []string{
			summary.ID,
			formatTimestamp(summary.StartedAt),
			finished,
			strconv.FormatInt(summary.Converted, 10),
			strconv.FormatInt(summary.Failed, 10),
			strconv.FormatInt(summary.Skipped, 10),
			strconv.FormatInt(summary.Warnings, 10),
			summary.Command,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Finished", "Converted", "Failed", "Skipped", "Warnings", "Command"},
		rows, 3, 4, 5, 6))
	return nil
}

func printRunFiles(cmd *cobra.Command, store *runlog.Store, runID string) error {
	files, err := store.Files(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "No files recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{
			file.Input,
			file.Output,
			string(file.Outcome),
			strconv.FormatInt(file.Warnings, 10),
			file.Detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Input", "Output", "Outcome", "Warnings", "Detail"},
		rows, 3))
	return nil
}
