package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"ytscribe/config"
)

func newListCommand(configFlag *string) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "list <playlist-or-video-url>",
		Short: "Enumerate a playlist without fetching anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-key") {
				cfg.APIKey = apiKey
			}

			logger := log.New(os.Stderr, "", log.LstdFlags)
			lister, err := newLister(cmd, cfg, logger)
			if err != nil {
				return err
			}

			items, err := lister.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No videos found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderItems(items))
			fmt.Fprintf(cmd.ErrOrStderr(), "Total: %d video(s)\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key (enables the API enumerator)")

	return cmd
}
