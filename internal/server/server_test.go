package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"lyricspider/internal/domain"
	"lyricspider/internal/logger"
	"lyricspider/internal/store"
)

func setupServer(t *testing.T) (*httptest.Server, *store.DB) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}

	srv := httptest.NewServer(New(db, logger.Default()).Router())
	t.Cleanup(func() {
		srv.Close()
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	})
	return srv, db
}

func seedLyrics(t *testing.T, db *store.DB, title, artists, lyrics string) {
	t.Helper()

	track := &domain.Track{SpotifyID: "sp-" + title, Title: title, Artists: artists, Metadata: "{}"}
	if _, err := db.UpsertTrack(track); err != nil {
		t.Fatalf("UpsertTrack failed: %v", err)
	}
	if _, err := db.RecordLyrics(track.ID, "https://g/"+title, lyrics); err != nil {
		t.Fatalf("RecordLyrics failed: %v", err)
	}
}

func TestHandleSearch(t *testing.T) {
	srv, db := setupServer(t)
	seedLyrics(t, db, "Song", "Artist", "walking beneath the moonlight")

	resp, err := http.Get(srv.URL + "/api/search?q=beneath")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Query   string               `json:"query"`
		Count   int                  `json:"count"`
		Results []domain.LyricsMatch `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if payload.Count != 1 || len(payload.Results) != 1 {
		t.Fatalf("expected 1 result, got %+v", payload)
	}
	if payload.Results[0].Title != "Song" {
		t.Errorf("expected title Song, got %s", payload.Results[0].Title)
	}
	if !strings.Contains(payload.Results[0].Highlighted, "<b>beneath</b>") {
		t.Errorf("expected highlighted term, got %q", payload.Results[0].Highlighted)
	}
}

func TestHandleSearchMissingQuery(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/search")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleStats(t *testing.T) {
	srv, db := setupServer(t)
	seedLyrics(t, db, "Song", "Artist", "some words")

	resp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats store.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if stats.Tracks != 1 || stats.Lyrics != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
