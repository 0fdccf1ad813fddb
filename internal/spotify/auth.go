// Package spotify handles catalog intake: authenticating against the
// Spotify Web API and mirroring the user's saved tracks into the store.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thanhpk/randstr"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"lyricspider/internal/config"
	"lyricspider/internal/logger"
)

// Authenticate runs the authorization-code flow: it prints the consent URL,
// listens on the configured redirect address for the callback, exchanges the
// code and returns an authenticated API client. Blocks until the callback
// arrives or ctx is cancelled.
func Authenticate(ctx context.Context, cfg *config.Config, log *logger.Logger) (*spotify.Client, error) {
	redirect, err := url.Parse(cfg.SpotifyRedirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.SpotifyClientID),
		spotifyauth.WithClientSecret(cfg.SpotifyClientSecret),
		spotifyauth.WithRedirectURL(cfg.SpotifyRedirectURI),
		spotifyauth.WithScopes(spotifyauth.ScopeUserLibraryRead),
	)

	state := randstr.Hex(16)
	tokenCh := make(chan *oauth2.Token, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.Token(r.Context(), state, r)
		if err != nil {
			http.Error(w, "authentication failed", http.StatusForbidden)
			errCh <- fmt.Errorf("token exchange failed: %w", err)
			return
		}
		fmt.Fprintln(w, "Authenticated. You can close this tab.")
		tokenCh <- token
	})

	srv := &http.Server{Addr: redirect.Host, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback server failed: %w", err)
		}
	}()
	defer srv.Close() //nolint:errcheck // best-effort teardown

	log.Info("waiting for authorization", "url", auth.AuthURL(state))
	fmt.Printf("Open the following URL in your browser to authorize:\n\n  %s\n\n", auth.AuthURL(state))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case token := <-tokenCh:
		return spotify.New(auth.Client(ctx, token)), nil
	}
}
