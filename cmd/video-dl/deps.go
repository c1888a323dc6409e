package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/internal/infrastructure"
)

func newDepsCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that yt-dlp and ffmpeg are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			status := infrastructure.CheckDependencies(cmd.Context(), cfg.ExecutablePath())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Dependency check:")
			printTool(out, status.YTDLP, "install it from https://github.com/yt-dlp/yt-dlp#installation")
			printTool(out, status.FFmpeg, "needed to merge video and audio streams")

			if !status.Ready() {
				return &domain.ExternalToolNotFoundError{Path: cfg.ExecutablePath()}
			}
			return nil
		},
	}
}

func printTool(out io.Writer, tool infrastructure.ToolStatus, hint string) {
	if tool.Available {
		fmt.Fprintf(out, "  %s: ok (%s) %s\n", tool.Name, tool.Version, tool.Path)
		return
	}
	fmt.Fprintf(out, "  %s: missing (%s), %s\n", tool.Name, tool.Error, hint)
}
