package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"lyricspider/internal/domain"
)

// CreateRun opens a durable record for a pipeline run.
func (db *DB) CreateRun() (*domain.Run, error) {
	run := &domain.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	_, err := db.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// FinishRun closes a run record with its final tallies.
func (db *DB) FinishRun(id string, processed, recorded, skipped int) error {
	result, err := db.Exec(`UPDATE runs
		SET finished_at = ?, processed = ?, recorded = ?, skipped = ?
		WHERE id = ?`,
		time.Now().UTC(), processed, recorded, skipped, id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// GetRun fetches a run record by id.
func (db *DB) GetRun(id string) (*domain.Run, error) {
	var run domain.Run
	if err := db.Get(&run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]domain.Run, error) {
	var runs []domain.Run
	err := db.Select(&runs, `SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
