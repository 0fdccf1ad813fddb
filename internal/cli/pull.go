package cli

import (
	"github.com/spf13/cobra"

	"lyricspider/internal/genius"
	"lyricspider/internal/pipeline"
	"lyricspider/internal/store"
)

func init() {
	rootCmd.AddCommand(cmdPull())
}

func cmdPull() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download lyrics for every catalog track without them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n, err := cmd.Flags().GetInt("search-workers"); err == nil && cmd.Flags().Changed("search-workers") {
				cfg.SearchWorkers = n
			}
			if n, err := cmd.Flags().GetInt("fetch-workers"); err == nil && cmd.Flags().Changed("fetch-workers") {
				cfg.FetchWorkers = n
			}
			if d, err := cmd.Flags().GetDuration("search-delay"); err == nil && cmd.Flags().Changed("search-delay") {
				cfg.SearchDelay = d
			}
			if d, err := cmd.Flags().GetDuration("fetch-delay"); err == nil && cmd.Flags().Changed("fetch-delay") {
				cfg.FetchDelay = d
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // deferred cleanup

			tracks, err := db.PendingTracks()
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				log.Info("backlog is empty, nothing to pull")
				return nil
			}
			log.Info("pulling lyrics", "backlog", len(tracks),
				"search_workers", cfg.SearchWorkers, "fetch_workers", cfg.FetchWorkers)

			run, err := db.CreateRun()
			if err != nil {
				return err
			}

			newResolver := func() pipeline.Resolver {
				client := genius.NewClient(cfg.GeniusBaseURL, cfg.HTTPTimeout, cfg.SearchDelay)
				return genius.NewResolver(client, log)
			}
			newExtractor := func() pipeline.Extractor {
				return genius.NewExtractor(cfg.HTTPTimeout, cfg.FetchDelay, log)
			}

			p := pipeline.New(pipeline.Config{
				SearchWorkers: cfg.SearchWorkers,
				FetchWorkers:  cfg.FetchWorkers,
			}, newResolver, newExtractor, db, log)

			summary, runErr := p.Run(cmd.Context(), tracks)

			if err := db.FinishRun(run.ID, summary.Processed, summary.Recorded, summary.Skipped); err != nil {
				log.Error("failed to finish run record", "run_id", run.ID, "error", err)
			}

			log.Info("pull finished",
				"run_id", run.ID,
				"processed", summary.Processed,
				"recorded", summary.Recorded,
				"skipped", summary.Skipped)
			return runErr
		},
	}

	cmd.Flags().Int("search-workers", 0, "number of concurrent search workers")
	cmd.Flags().Int("fetch-workers", 0, "number of concurrent page fetch workers")
	cmd.Flags().Duration("search-delay", 0, "per-worker delay between search requests")
	cmd.Flags().Duration("fetch-delay", 0, "per-worker delay between page fetches")
	return cmd
}
