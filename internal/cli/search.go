package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lyricspider/internal/constants"
	"lyricspider/internal/store"
)

func init() {
	rootCmd.AddCommand(cmdSearch())
}

func cmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over stored lyrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			open, err := cmd.Flags().GetString("open")
			if err != nil {
				return err
			}
			clos, err := cmd.Flags().GetString("close")
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // deferred cleanup

			start := time.Now()
			matches, err := db.SearchLyrics(args[0], open, clos)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Printf("query: %q. %d results (%s)\n", args[0], len(matches), elapsed)
			for _, match := range matches {
				fmt.Printf("\n== %s - %s ==\n%s\n", match.Artists, match.Title, match.Highlighted)
			}
			return nil
		},
	}

	cmd.Flags().String("open", constants.DefaultHighlightOpen, "opening highlight delimiter")
	cmd.Flags().String("close", constants.DefaultHighlightClose, "closing highlight delimiter")
	return cmd
}
