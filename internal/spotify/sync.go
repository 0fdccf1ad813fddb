package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"

	"lyricspider/internal/domain"
	"lyricspider/internal/logger"
	"lyricspider/internal/store"
)

// Syncer mirrors the user's saved tracks into the local catalog.
type Syncer struct {
	client *spotify.Client
	db     *store.DB
	log    *logger.Logger
}

func NewSyncer(client *spotify.Client, db *store.DB, log *logger.Logger) *Syncer {
	return &Syncer{
		client: client,
		db:     db,
		log:    log.WithComponent("sync"),
	}
}

// Sync pages through the saved-tracks library and upserts every track.
// Already-known tracks are skipped by the spotify_id uniqueness, so re-syncs
// only add what is new. Returns (seen, added).
func (s *Syncer) Sync(ctx context.Context, pageSize int) (int, int, error) {
	var seen, added int

	offset := 0
	for {
		page, err := s.client.CurrentUsersTracks(ctx, spotify.Limit(pageSize), spotify.Offset(offset))
		if err != nil {
			return seen, added, fmt.Errorf("failed to fetch saved tracks at offset %d: %w", offset, err)
		}
		if len(page.Tracks) == 0 {
			break
		}

		for i := range page.Tracks {
			saved := &page.Tracks[i]

			raw, err := json.Marshal(saved.FullTrack)
			if err != nil {
				return seen, added, fmt.Errorf("failed to encode track metadata: %w", err)
			}

			names := make([]string, 0, len(saved.Artists))
			for _, artist := range saved.Artists {
				names = append(names, artist.Name)
			}

			track := &domain.Track{
				SpotifyID: string(saved.ID),
				Title:     saved.Name,
				Artists:   strings.Join(names, ", "),
				Metadata:  string(raw),
			}

			inserted, err := s.db.UpsertTrack(track)
			if err != nil {
				return seen, added, err
			}
			seen++
			if inserted {
				added++
			}
		}

		offset += len(page.Tracks)
		s.log.Debug("synced page", "offset", offset, "total", page.Total)
		if offset >= int(page.Total) {
			break
		}
	}

	s.log.Info("sync complete", "seen", seen, "added", added)
	return seen, added, nil
}
