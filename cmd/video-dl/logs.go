package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/videodl/video-dl/internal/app"
	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/pkg/logger"
)

func newLogsCmd(a *cliApp) *cobra.Command {
	var (
		lines int
		date  string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the raw yt-dlp output log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation("20060102", date, time.Local)
				if err != nil {
					return &domain.InvalidValueError{Key: "--date", Value: date, Reason: "use YYYYMMDD"}
				}
				day = parsed
			}

			reader := logger.NewLogReader(app.DefaultToolLogDir())
			entries, err := reader.Tail(day, lines)
			if err != nil {
				return fmt.Errorf("failed to read log: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No log entries in %s\n", reader.GetLogPath(day))
				return nil
			}
			for _, line := range entries {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&date, "date", "", "Log date as YYYYMMDD (default today)")
	return cmd
}
