package database

import (
	"database/sql"

	"linkedin-scraper/internal/models"
)

// RunRepository handles run bookkeeping
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db.GetConn()}
}

// StartRun records a new run with its URL total.
func (rr *RunRepository) StartRun(stats models.RunStats) error {
	_, err := rr.db.Exec(`
		INSERT INTO runs (run_id, started_at, total) VALUES (?, ?, ?)
	`, stats.RunID, stats.StartedAt, stats.Total)
	return err
}

// FinishRun stores the final counters for a run.
func (rr *RunRepository) FinishRun(stats models.RunStats) error {
	_, err := rr.db.Exec(`
		UPDATE runs
		SET finished_at = ?,
			processed = ?,
			success_data = ?,
			success_empty = ?,
			failed = ?,
			blocked = ?,
			resume_skipped = ?,
			aborted = ?,
			interrupted = ?
		WHERE run_id = ?
	`, stats.FinishedAt, stats.Processed, stats.SuccessData, stats.SuccessEmpty,
		stats.Failed, stats.Blocked, stats.ResumeSkipped, stats.Aborted,
		stats.Interrupted, stats.RunID)
	return err
}

// GetRun reads a run record back by its ID.
func (rr *RunRepository) GetRun(runID string) (models.RunStats, error) {
	var stats models.RunStats
	var finishedAt sql.NullTime
	err := rr.db.QueryRow(`
		SELECT run_id, started_at, finished_at, total, processed,
			success_data, success_empty, failed, blocked, resume_skipped,
			aborted, interrupted
		FROM runs WHERE run_id = ?
	`, runID).Scan(&stats.RunID, &stats.StartedAt, &finishedAt, &stats.Total,
		&stats.Processed, &stats.SuccessData, &stats.SuccessEmpty, &stats.Failed,
		&stats.Blocked, &stats.ResumeSkipped, &stats.Aborted, &stats.Interrupted)
	if finishedAt.Valid {
		stats.FinishedAt = finishedAt.Time
	}
	return stats, err
}
