package store

import (
	"database/sql"
	"errors"
	"fmt"

	"lyricspider/internal/domain"
)

// UpsertTrack inserts a catalog track, ignoring duplicates by spotify_id.
// Returns true when a new row was inserted.
func (db *DB) UpsertTrack(track *domain.Track) (bool, error) {
	query := `INSERT INTO tracks (spotify_id, title, artists, spotify_metadata)
		VALUES (:spotify_id, :title, :artists, :spotify_metadata)
		ON CONFLICT(spotify_id) DO NOTHING`

	result, err := db.NamedExec(query, track)
	if err != nil {
		return false, fmt.Errorf("failed to upsert track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	track.ID = id
	return true, nil
}

// GetTrackBySpotifyID looks a track up by its external identity.
func (db *DB) GetTrackBySpotifyID(spotifyID string) (*domain.Track, error) {
	var track domain.Track
	err := db.Get(&track, `SELECT * FROM tracks WHERE spotify_id = ?`, spotifyID)
	if err != nil {
		return nil, err
	}
	return &track, nil
}

// PendingTracks returns the backlog: every track without a lyrics record.
// The result is fully materialized so the pipeline works from a stable
// snapshot while its own writes land.
func (db *DB) PendingTracks() ([]domain.Track, error) {
	query := `SELECT tracks.*
		FROM tracks
		LEFT JOIN lyrics ON tracks.id = lyrics.track_id
		WHERE lyrics.track_id IS NULL`

	var tracks []domain.Track
	if err := db.Select(&tracks, query); err != nil {
		return nil, fmt.Errorf("failed to list pending tracks: %w", err)
	}
	return tracks, nil
}

// FindLyricsForTitleArtist matches a (title, artist) pair from local file
// tags against the catalog and returns the stored lyrics, or nil when the
// track is unknown or has none.
func (db *DB) FindLyricsForTitleArtist(title, artist string) (*domain.LyricsRecord, error) {
	query := `SELECT lyrics.*
		FROM lyrics
		JOIN tracks ON tracks.id = lyrics.track_id
		WHERE lower(tracks.title) = lower(?)
		  AND instr(lower(tracks.artists), lower(?)) > 0
		LIMIT 1`

	var record domain.LyricsRecord
	err := db.Get(&record, query, title, artist)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match lyrics for %q: %w", title, err)
	}
	return &record, nil
}

// Stats summarizes catalog coverage.
type Stats struct {
	Tracks int `db:"tracks" json:"tracks"`
	Lyrics int `db:"lyrics" json:"lyrics"`
}

func (db *DB) Stats() (Stats, error) {
	var s Stats
	err := db.Get(&s, `SELECT
		(SELECT COUNT(*) FROM tracks) AS tracks,
		(SELECT COUNT(*) FROM lyrics) AS lyrics`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return s, nil
}
