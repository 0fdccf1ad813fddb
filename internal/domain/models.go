// Package domain defines the entities shared across the application.
package domain

import (
	"database/sql"
	"time"
)

// Track is a catalog entry created by the sync step. Tracks are immutable
// once inserted and are never deleted by the lyrics pipeline.
type Track struct {
	ID        int64  `db:"id"`
	SpotifyID string `db:"spotify_id"`
	Title     string `db:"title"`
	Artists   string `db:"artists"` // display string, comma-joined
	Metadata  string `db:"spotify_metadata"`
}

// LyricsState is the availability state genius reports for a song.
type LyricsState string

const (
	LyricsStateComplete   LyricsState = "complete"
	LyricsStateUnreleased LyricsState = "unreleased"
)

// SearchCandidate is a genius search hit tentatively chosen to represent a
// track's lyrics page. It only lives inside the pipeline, between the search
// stage and the fetch stage.
type SearchCandidate struct {
	URL          string
	Title        string
	LyricsState  LyricsState
	Instrumental bool
}

// HasLyrics reports whether genius claims a finished, non-instrumental
// lyrics transcription for the candidate.
func (c SearchCandidate) HasLyrics() bool {
	return c.LyricsState == LyricsStateComplete && !c.Instrumental
}

// LyricsRecord is the persisted lyrics for a track. At most one record
// exists per track; the unique index on track_id enforces it.
type LyricsRecord struct {
	ID        int64  `db:"id"`
	TrackID   int64  `db:"track_id"`
	GeniusURL string `db:"genius_url"`
	Lyrics    string `db:"lyrics"`
}

// LyricsMatch is one full-text search result, joined back to the track it
// belongs to. Highlighted is the lyrics text with matched terms wrapped in
// the configured delimiter pair.
type LyricsMatch struct {
	Title       string `db:"title" json:"title"`
	Artists     string `db:"artists" json:"artists"`
	Lyrics      string `db:"lyrics" json:"lyrics"`
	Highlighted string `db:"highlighted" json:"highlighted"`
}

// Run is the durable summary of one pipeline run.
type Run struct {
	ID         string       `db:"id"`
	StartedAt  time.Time    `db:"started_at"`
	FinishedAt sql.NullTime `db:"finished_at"`
	Processed  int          `db:"processed"`
	Recorded   int          `db:"recorded"`
	Skipped    int          `db:"skipped"`
}
