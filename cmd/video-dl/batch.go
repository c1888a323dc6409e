package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/videodl/video-dl/internal/app"
	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/pkg/progress"
)

func newBatchCmd(a *cliApp) *cobra.Command {
	var (
		file      string
		outputDir string
		flags     domain.DownloadFlags
	)

	cmd := &cobra.Command{
		Use:   "batch [url...]",
		Short: "Download several videos one after another",
		Example: `  video-dl batch https://youtu.be/a https://youtu.be/b
  video-dl batch -i urls.txt -d ~/Videos/batch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := append([]string{}, args...)
			if file != "" {
				fromFile, err := readURLFile(cmd, file)
				if err != nil {
					return err
				}
				urls = append(urls, fromFile...)
			}
			if len(urls) == 0 {
				return &domain.UsageError{Err: fmt.Errorf("no URLs given: pass them as arguments or with --file")}
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				copied := *cfg
				copied.DownloadDir = outputDir
				cfg = &copied
			}

			reqs := make([]*domain.DownloadRequest, 0, len(urls))
			for _, url := range urls {
				reqs = append(reqs, domain.NewDownloadRequest(url, flags, cfg))
			}

			out := cmd.OutOrStdout()
			batch, err := a.newService(cfg).DownloadAll(cmd.Context(), reqs, func(req *domain.DownloadRequest) domain.ProgressReporter {
				fmt.Fprintf(out, "Downloading %s\n", req.URL)
				return progress.NewTerminal(cfg.ShowProgress)
			})

			for _, item := range batch.Items {
				if item.Err != nil {
					fmt.Fprintf(out, "  failed: %s: %v\n", item.URL, item.Err)
				} else {
					fmt.Fprintf(out, "  ok:     %s\n", item.URL)
				}
			}
			if err != nil {
				return err
			}
			return batch.Err()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "i", "", "File with one URL per line, - for stdin")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for the downloads (default download_dir)")
	cmd.Flags().StringVarP(&flags.Quality, "quality", "q", "", "Quality for every video")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "Container format for every video")
	cmd.Flags().BoolVar(&flags.Notify, "notify", false, "Send a desktop notification for each video")

	return cmd
}

func readURLFile(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open URL list: %w", err)
		}
		defer f.Close()
		r = f
	}
	return app.ReadURLList(r)
}
