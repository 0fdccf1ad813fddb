package store

import (
	"database/sql"
	"errors"
	"fmt"

	"lyricspider/internal/domain"
)

// RecordLyrics stores lyrics for a track. The unique index on track_id makes
// it idempotent: when a record already exists the insert is a no-op and the
// first return value is false. The FTS triggers fire inside the same
// statement, so the shadow index is updated atomically with the table.
func (db *DB) RecordLyrics(trackID int64, geniusURL, lyrics string) (bool, error) {
	query := `INSERT INTO lyrics (track_id, genius_url, lyrics)
		VALUES (?, ?, ?)
		ON CONFLICT(track_id) DO NOTHING`

	result, err := db.Exec(query, trackID, geniusURL, lyrics)
	if err != nil {
		return false, fmt.Errorf("failed to record lyrics for track %d: %w", trackID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetLyricsByTrackID returns the lyrics record for a track, or nil if the
// track has none.
func (db *DB) GetLyricsByTrackID(trackID int64) (*domain.LyricsRecord, error) {
	var record domain.LyricsRecord
	err := db.Get(&record, `SELECT * FROM lyrics WHERE track_id = ?`, trackID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteLyrics removes a track's lyrics record. The delete trigger drops the
// matching shadow index entry in the same transaction. The pipeline never
// calls this; it exists for external maintenance.
func (db *DB) DeleteLyrics(trackID int64) error {
	if _, err := db.Exec(`DELETE FROM lyrics WHERE track_id = ?`, trackID); err != nil {
		return fmt.Errorf("failed to delete lyrics for track %d: %w", trackID, err)
	}
	return nil
}

// SearchLyrics runs a full-text query over the shadow index and joins the
// matches back to their tracks. Matched terms in the returned highlighted
// text are wrapped in the given delimiter pair. Result order is whatever the
// query engine produces.
func (db *DB) SearchLyrics(query, openDelim, closeDelim string) ([]domain.LyricsMatch, error) {
	stmt := `SELECT
			tracks.title AS title,
			tracks.artists AS artists,
			lyrics_idx.lyrics AS lyrics,
			highlight(lyrics_idx, 0, ?, ?) AS highlighted
		FROM lyrics_idx
		LEFT JOIN lyrics ON lyrics_idx.rowid = lyrics.id
		LEFT JOIN tracks ON tracks.id = lyrics.track_id
		WHERE lyrics_idx.lyrics MATCH ?`

	var matches []domain.LyricsMatch
	if err := db.Select(&matches, stmt, openDelim, closeDelim, query); err != nil {
		return nil, fmt.Errorf("full-text query %q failed: %w", query, err)
	}
	return matches, nil
}
