package cli

import (
	"github.com/spf13/cobra"

	"lyricspider/internal/store"
	"lyricspider/internal/tagging"
)

func init() {
	rootCmd.AddCommand(cmdExport())
}

func cmdExport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Embed stored lyrics into local audio file tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cmd.Flags().GetString("library")
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // deferred cleanup

			tagged, skipped, err := tagging.ExportLibrary(db, dir, log)
			if err != nil {
				return err
			}

			log.Info("export finished", "tagged", tagged, "skipped", skipped)
			return nil
		},
	}

	cmd.Flags().StringP("library", "l", ".", "path to the music library")
	return cmd
}
