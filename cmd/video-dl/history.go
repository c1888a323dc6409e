package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/videodl/video-dl/internal/domain"
)

func newHistoryCmd(a *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past invocations",
	}

	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryShowCmd(a))
	cmd.AddCommand(newHistoryStatsCmd(a))
	cmd.AddCommand(newHistoryClearCmd(a))

	return cmd
}

func newHistoryListCmd(a *cliApp) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent invocations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openHistory()
			if err != nil {
				return err
			}
			if repo == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled")
				return nil
			}

			entries, err := repo.List(limit)
			if err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tACTION\tSTATUS\tPLATFORM\tURL\tSTARTED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					truncate(e.ID, 8),
					e.Action,
					e.Status,
					e.Platform.DisplayName(),
					truncate(e.URL, 50),
					e.StartedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}

func newHistoryShowCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one invocation by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openHistory()
			if err != nil {
				return err
			}
			if repo == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled")
				return nil
			}

			e, err := repo.FindByID(args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return &domain.HistoryLookupError{ID: args[0], Reason: "not found"}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", e.ID)
			fmt.Fprintf(w, "Action:\t%s\n", e.Action)
			fmt.Fprintf(w, "URL:\t%s\n", e.URL)
			fmt.Fprintf(w, "Platform:\t%s\n", e.Platform.DisplayName())
			fmt.Fprintf(w, "Status:\t%s (exit code %d)\n", e.Status, e.ExitCode)
			if e.ToolExitCode != domain.NoToolExitCode {
				fmt.Fprintf(w, "yt-dlp exit code:\t%d\n", e.ToolExitCode)
			}
			if e.Title != "" {
				fmt.Fprintf(w, "Title:\t%s\n", e.Title)
			}
			if e.Action == domain.ActionDownload {
				fmt.Fprintf(w, "Quality:\t%s\n", e.Quality)
				fmt.Fprintf(w, "Format:\t%s\n", e.Format)
				fmt.Fprintf(w, "Output:\t%s\n", e.Output)
			}
			fmt.Fprintf(w, "Started:\t%s\n", e.StartedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "Duration:\t%s\n", e.Duration().Round(time.Millisecond))
			if e.ErrorMessage != "" {
				fmt.Fprintf(w, "Error:\t%s\n", e.ErrorMessage)
			}
			return w.Flush()
		},
	}
}

func newHistoryStatsCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show outcome counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openHistory()
			if err != nil {
				return err
			}
			if repo == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled")
				return nil
			}

			stats, err := repo.GetStats()
			if err != nil {
				return fmt.Errorf("failed to get history stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "History Statistics:")
			fmt.Fprintf(out, "  Total:     %d\n", stats.Total)
			fmt.Fprintf(out, "  Completed: %d\n", stats.Completed)
			fmt.Fprintf(out, "  Failed:    %d\n", stats.Failed)
			fmt.Fprintf(out, "  Cancelled: %d\n", stats.Cancelled)
			return nil
		},
	}
}

func newHistoryClearCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openHistory()
			if err != nil {
				return err
			}
			if repo == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled")
				return nil
			}

			if err := repo.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
