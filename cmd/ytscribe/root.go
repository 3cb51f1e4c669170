package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:   "ytscribe",
		Short: "Fetch and archive YouTube playlist transcripts",
		Long: `ytscribe enumerates the videos of a YouTube playlist (or a single
video URL), fetches a timed-text transcript for each in your preferred
language order, and saves one JSON document per video. Videos whose
document already exists are skipped, so an interrupted run can simply be
started again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newListCommand(&configFlag))

	return rootCmd
}
