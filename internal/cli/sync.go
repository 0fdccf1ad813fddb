package cli

import (
	"github.com/spf13/cobra"

	"lyricspider/internal/constants"
	"lyricspider/internal/spotify"
	"lyricspider/internal/store"
)

func init() {
	rootCmd.AddCommand(cmdSync())
}

func cmdSync() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror Spotify saved tracks into the local catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.ValidateSpotify(); err != nil {
				return err
			}

			pageSize, err := cmd.Flags().GetInt("page-size")
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // deferred cleanup

			client, err := spotify.Authenticate(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			syncer := spotify.NewSyncer(client, db, log)
			_, _, err = syncer.Sync(cmd.Context(), pageSize)
			return err
		},
	}

	cmd.Flags().Int("page-size", constants.DefaultSyncPageSize, "saved-tracks page size")
	return cmd
}
