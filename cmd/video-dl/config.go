package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigResetCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))

	return cmd
}

func newConfigGetCmd(a *cliApp) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print one setting, or all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.configStore()
			config, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if key != "" {
				value, err := config.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}

			for _, k := range store.Keys() {
				value, _ := config.Get(k)
				fmt.Fprintf(out, "%s = %q\n", k, value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Setting to print")
	return cmd
}

func newConfigSetCmd(a *cliApp) *cobra.Command {
	var key, value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change a setting",
		Example: `  video-dl config set -k download_dir -v ~/Videos
  video-dl config set -k ytdlp_path -v none`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.configStore().Set(key, value)
			if err != nil {
				return err
			}
			current, _ := config.Get(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", key, current)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Setting to change (required)")
	cmd.Flags().StringVarP(&value, "value", "v", "", "New value (required)")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("value")
	return cmd
}

func newConfigResetCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.configStore().Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}
}

func newConfigPathCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.configStore().Path())
		},
	}
}
