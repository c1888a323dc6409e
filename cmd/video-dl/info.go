package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const descriptionPreviewLines = 5

func newInfoCmd(a *cliApp) *cobra.Command {
	var (
		url      string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show video information without downloading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			info, err := a.newService(cfg).Info(cmd.Context(), url)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonMode {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Title:\t%s\n", info.Title)
			fmt.Fprintf(w, "ID:\t%s\n", info.ID)
			if info.Uploader != "" {
				fmt.Fprintf(w, "Uploader:\t%s\n", info.Uploader)
			}
			fmt.Fprintf(w, "Platform:\t%s\n", info.Platform.DisplayName())
			fmt.Fprintf(w, "Duration:\t%s\n", info.FormattedDuration())
			fmt.Fprintf(w, "Qualities:\t%s\n", joinOrNone(info.Qualities))
			fmt.Fprintf(w, "Formats:\t%s\n", joinOrNone(info.Formats))
			if err := w.Flush(); err != nil {
				return err
			}

			if info.Description != "" {
				preview, truncated := info.DescriptionPreview(descriptionPreviewLines)
				fmt.Fprintf(out, "\nDescription:\n%s\n", preview)
				if truncated {
					fmt.Fprintln(out, "[... description truncated ...]")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Video URL (required)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print the information as JSON")
	cmd.MarkFlagRequired("url")

	return cmd
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
