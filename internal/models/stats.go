package models

import "time"

// RunStats aggregates the outcome counters for a single run
type RunStats struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Total         int
	Processed     int
	SuccessData   int
	SuccessEmpty  int
	Failed        int
	Blocked       int
	ResumeSkipped int

	Aborted     bool
	Interrupted bool
}

// RowsWritten returns how many CSV rows this run produced.
func (s RunStats) RowsWritten() int {
	return s.SuccessData + s.SuccessEmpty
}

// Duration returns the elapsed wall time of the run.
func (s RunStats) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
