// Package cli defines the lyricspider command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lyricspider/internal/config"
	"lyricspider/internal/logger"
)

var (
	cfg    *config.Config
	log    *logger.Logger
	dbPath string

	rootCmd = &cobra.Command{
		Use:          "lyricspider",
		Short:        "Backfill and search full lyric text for a local music catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine; the environment may be set directly.
			_ = godotenv.Load()

			cfg = config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
			})
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides DB_PATH)")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
