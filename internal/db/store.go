package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/wirescan/internal/wire"
)

// ScanRun records one batch invocation over a source directory.
type ScanRun struct {
	ID             string
	SourceDir      string
	ThetaMin       float64
	ThetaMax       float64
	ThetaStep      float64
	StartedAt      time.Time
	FinishedAt     *time.Time
	FilesProcessed *int64
	FilesSkipped   *int64
}

// CreateScanRun inserts a new scan run and returns its generated ID.
func (db *DB) CreateScanRun(sourceDir string, grid wire.BinGrid) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO scan_runs (run_id, source_dir, theta_min, theta_max, theta_step, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, sourceDir, grid.ThetaMin, grid.ThetaMax, grid.ThetaStep, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("create scan run: %w", err)
	}
	return id, nil
}

// FinishScanRun stamps a run complete with its batch counters.
func (db *DB) FinishScanRun(id string, processed, skipped int) error {
	_, err := db.Exec(
		`UPDATE scan_runs SET finished_at = ?, files_processed = ?, files_skipped = ? WHERE run_id = ?`,
		time.Now().UTC(), processed, skipped, id,
	)
	if err != nil {
		return fmt.Errorf("finish scan run %s: %w", id, err)
	}
	return nil
}

// GetScanRun loads one scan run by ID.
func (db *DB) GetScanRun(id string) (*ScanRun, error) {
	var run ScanRun
	err := db.QueryRow(
		`SELECT run_id, source_dir, theta_min, theta_max, theta_step, started_at, finished_at, files_processed, files_skipped
		 FROM scan_runs WHERE run_id = ?`, id,
	).Scan(&run.ID, &run.SourceDir, &run.ThetaMin, &run.ThetaMax, &run.ThetaStep,
		&run.StartedAt, &run.FinishedAt, &run.FilesProcessed, &run.FilesSkipped)
	if err != nil {
		return nil, fmt.Errorf("get scan run %s: %w", id, err)
	}
	return &run, nil
}

// RecordProfile persists every (wire, angle-bin) row of a reduced profile
// in a single transaction, so a run's rows are either all present or
// absent. The full statistics are kept, not just the emitted median.
func (db *DB) RecordProfile(runID, sourceFile string, p *wire.Profile) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin profile transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO wire_profile (run_id, source_file, wire_index, radius, x, y, theta,
		                           median, mean, std, min_value, max_value, sample_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare profile insert: %w", err)
	}
	defer stmt.Close()

	for iwire, row := range p.Stats {
		for j, s := range row {
			_, err := stmt.Exec(runID, sourceFile, iwire, p.Radii[iwire], p.X, p.Y,
				p.Grid.Center(j), s.Median, s.Mean, s.Std, s.Min, s.Max, s.Count)
			if err != nil {
				return fmt.Errorf("insert wire %d bin %d: %w", iwire, j, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile: %w", err)
	}
	return nil
}

// ProfileRowCount returns the number of persisted rows for a run, used by
// operators to sanity-check batch completeness.
func (db *DB) ProfileRowCount(runID string) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM wire_profile WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profile rows: %w", err)
	}
	return n, nil
}
