package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"ytscribe/batch"
	"ytscribe/config"
	"ytscribe/storage"
	"ytscribe/youtube"
)

func newRunCommand(configFlag *string) *cobra.Command {
	var (
		outputDir string
		languages []string
		minDelay  time.Duration
		maxDelay  time.Duration
		batchSize int
		batchRest time.Duration
		apiKey    string
	)

	cmd := &cobra.Command{
		Use:   "run <playlist-or-video-url>",
		Short: "Fetch transcripts for every video of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("languages") {
				cfg.Languages = languages
			}
			if flags.Changed("min-delay") {
				cfg.MinDelay = minDelay
			}
			if flags.Changed("max-delay") {
				cfg.MaxDelay = maxDelay
			}
			if flags.Changed("batch-size") {
				cfg.BatchSize = batchSize
			}
			if flags.Changed("batch-rest") {
				cfg.BatchRest = batchRest
			}
			if flags.Changed("api-key") {
				cfg.APIKey = apiKey
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runIngestion(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "transcripts", "Output directory for transcript documents")
	cmd.Flags().StringSliceVarP(&languages, "languages", "l", []string{"en"}, "Preferred transcript languages, in priority order")
	cmd.Flags().DurationVar(&minDelay, "min-delay", 5*time.Second, "Minimum delay between videos")
	cmd.Flags().DurationVar(&maxDelay, "max-delay", 20*time.Second, "Maximum delay between videos")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Videos processed between long rests")
	cmd.Flags().DurationVar(&batchRest, "batch-rest", 300*time.Second, "Extra rest after each batch")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key (enables the API enumerator)")

	return cmd
}

func runIngestion(cmd *cobra.Command, cfg *config.Config, ref string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	store, err := storage.NewStore(cfg.OutputDir)
	if err != nil {
		return err
	}

	// One writer per output directory: a second concurrent invocation would
	// interleave with the skip checks.
	lock := flock.New(filepath.Join(cfg.OutputDir, ".ytscribe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another ytscribe run is writing to %s", cfg.OutputDir)
	}
	defer lock.Unlock()

	lister, err := newLister(cmd, cfg, logger)
	if err != nil {
		return err
	}

	fetcher := youtube.NewTimedtextFetcher()
	fetcher.SetLogger(logger)

	runner := batch.NewRunner(lister, fetcher, store, cfg, logger)
	report, err := runner.Run(ctx, ref)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))
	return nil
}

// newLister picks the enumerator: Data API when a key is configured,
// otherwise the keyless ytdlp library.
func newLister(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (youtube.PlaylistLister, error) {
	if cfg.APIKey != "" {
		lister, err := youtube.NewAPILister(cmd.Context(), cfg.APIKey)
		if err != nil {
			return nil, err
		}
		lister.SetLogger(logger)
		return lister, nil
	}
	lister := youtube.NewYtdlpLister()
	lister.SetLogger(logger)
	return lister, nil
}
