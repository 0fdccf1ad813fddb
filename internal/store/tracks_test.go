package store

import (
	"testing"

	"lyricspider/internal/domain"
)

func TestUpsertTrackDeduplicates(t *testing.T) {
	db := setupTestDB(t)

	first := insertTestTrack(t, db, "sp1", "Song", "Artist")
	if first.ID == 0 {
		t.Error("expected track ID to be set")
	}

	dup := &domain.Track{SpotifyID: "sp1", Title: "Song", Artists: "Artist", Metadata: "{}"}
	inserted, err := db.UpsertTrack(dup)
	if err != nil {
		t.Fatalf("second UpsertTrack failed: %v", err)
	}
	if inserted {
		t.Error("expected duplicate spotify_id to be a no-op")
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Tracks != 1 {
		t.Errorf("expected 1 track, got %d", stats.Tracks)
	}
}

func TestPendingTracks(t *testing.T) {
	db := setupTestDB(t)

	withLyrics := insertTestTrack(t, db, "sp1", "Covered", "Artist")
	pending := insertTestTrack(t, db, "sp2", "Uncovered", "Artist")

	if _, err := db.RecordLyrics(withLyrics.ID, "https://g/covered", "some lyrics"); err != nil {
		t.Fatalf("RecordLyrics failed: %v", err)
	}

	backlog, err := db.PendingTracks()
	if err != nil {
		t.Fatalf("PendingTracks failed: %v", err)
	}
	if len(backlog) != 1 {
		t.Fatalf("expected 1 pending track, got %d", len(backlog))
	}
	if backlog[0].ID != pending.ID {
		t.Errorf("expected pending track %d, got %d", pending.ID, backlog[0].ID)
	}
}

func TestFindLyricsForTitleArtist(t *testing.T) {
	db := setupTestDB(t)

	track := insertTestTrack(t, db, "sp1", "Cold Song", "Some Artist, Other Artist")
	if _, err := db.RecordLyrics(track.ID, "https://g/cold", "frozen words"); err != nil {
		t.Fatalf("RecordLyrics failed: %v", err)
	}

	record, err := db.FindLyricsForTitleArtist("cold song", "other artist")
	if err != nil {
		t.Fatalf("FindLyricsForTitleArtist failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected a match")
	}
	if record.Lyrics != "frozen words" {
		t.Errorf("expected lyrics 'frozen words', got %q", record.Lyrics)
	}

	record, err = db.FindLyricsForTitleArtist("Cold Song", "Unrelated")
	if err != nil {
		t.Fatalf("FindLyricsForTitleArtist failed: %v", err)
	}
	if record != nil {
		t.Errorf("expected no match for unrelated artist, got %+v", record)
	}
}
