package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lyricspider/internal/server"
	"lyricspider/internal/store"
)

func init() {
	rootCmd.AddCommand(cmdServe())
}

func cmdServe() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the full-text search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // deferred cleanup

			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: server.New(db, log).Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			log.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}
