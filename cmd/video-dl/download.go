package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/internal/infrastructure"
	"github.com/videodl/video-dl/pkg/progress"
)

func newDownloadCmd(a *cliApp) *cobra.Command {
	var (
		url    string
		flags  domain.DownloadFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a video",
		Example: `  video-dl download -u https://www.youtube.com/watch?v=dQw4w9WgXcQ
  video-dl download -u https://youtu.be/dQw4w9WgXcQ -q 720p -f webm -o clip.webm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			req := domain.NewDownloadRequest(url, flags, cfg)

			if dryRun {
				if _, err := domain.ResolvePlatform(url); err != nil {
					return err
				}
				if err := req.Validate(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), infrastructure.FormatCommandLine(cfg.ExecutablePath(), infrastructure.BuildDownloadArgs(req, cfg)...))
				return nil
			}

			reporter := progress.NewTerminal(cfg.ShowProgress)
			result, err := a.newService(cfg).Download(cmd.Context(), req, reporter)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Download complete: %s\n", result.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Video URL (required)")
	cmd.Flags().StringVarP(&flags.Quality, "quality", "q", "", "Quality: best, high, medium, low, worst, audio, <N>p or a yt-dlp selector")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "Container format: avi, flv, mkv, mov, mp4 or webm, optionally joined with /")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output path or yt-dlp template")
	cmd.Flags().BoolVar(&flags.Notify, "notify", false, "Send a desktop notification when finished")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the yt-dlp command instead of running it")
	cmd.MarkFlagRequired("url")

	return cmd
}
