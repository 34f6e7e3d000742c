package database

import (
	"database/sql"
	"fmt"

	"linkedin-scraper/internal/models"
)

// URL status constants
const (
	StatusPending      = "pending"
	StatusSuccessData  = "success_with_data"
	StatusSuccessEmpty = "success_without_data"
	StatusFailed       = "failed"
	StatusBlocked      = "blocked"
)

// URLRepository handles target URL operations
type URLRepository struct {
	db *sql.DB
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *DB) *URLRepository {
	return &URLRepository{db: db.GetConn()}
}

// ImportURLs inserts URLs as pending, ignoring ones already known so
// existing status is never reset.
func (ur *URLRepository) ImportURLs(urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	tx, err := ur.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO urls (url) VALUES (?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	imported := 0
	for _, url := range urls {
		if url == "" {
			continue
		}
		res, err := stmt.Exec(url)
		if err != nil {
			return 0, fmt.Errorf("failed to insert url %s: %w", url, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			imported += int(n)
		}
	}

	return imported, tx.Commit()
}

// UpdateStatus records the outcome of one URL.
func (ur *URLRepository) UpdateStatus(url, status, lastError string) error {
	_, err := ur.db.Exec(`
		UPDATE urls
		SET status = ?,
			last_error = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE url = ?
	`, status, lastError, url)
	return err
}

// UpdateProfile stores the extracted fields alongside the status.
func (ur *URLRepository) UpdateProfile(url string, record models.ProfileRecord, status string) error {
	_, err := ur.db.Exec(`
		UPDATE urls
		SET status = ?,
			profile_name = ?,
			profile_headline = ?,
			profile_location = ?,
			profile_role = ?,
			profile_company = ?,
			profile_about = ?,
			last_error = '',
			updated_at = CURRENT_TIMESTAMP
		WHERE url = ?
	`, status, record.Name, record.Headline, record.Location,
		record.CurrentRole, record.Company, record.About, url)
	return err
}

// IncrementAttempts bumps the attempt counter for a URL.
func (ur *URLRepository) IncrementAttempts(url string) error {
	_, err := ur.db.Exec(`
		UPDATE urls
		SET attempts = attempts + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE url = ?
	`, url)
	return err
}

// GetStats returns counts grouped by status plus the total.
func (ur *URLRepository) GetStats() (map[string]int, int, error) {
	rows, err := ur.db.Query(`
		SELECT status, COUNT(*) FROM urls GROUP BY status
	`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, err
		}
		stats[status] = count
		total += count
	}

	return stats, total, rows.Err()
}

// GetSucceeded returns the set of URLs already scraped successfully, used
// by resume mode to skip them on re-runs.
func (ur *URLRepository) GetSucceeded() (map[string]bool, error) {
	rows, err := ur.db.Query(`
		SELECT url FROM urls
		WHERE status IN (?, ?)
	`, StatusSuccessData, StatusSuccessEmpty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	succeeded := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		succeeded[url] = true
	}

	return succeeded, rows.Err()
}

// GetAttempts reads the attempt counter for a URL.
func (ur *URLRepository) GetAttempts(url string) (int, error) {
	var attempts int
	err := ur.db.QueryRow(`
		SELECT attempts FROM urls WHERE url = ?
	`, url).Scan(&attempts)
	return attempts, err
}
