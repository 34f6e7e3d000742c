package storage

import (
	"fmt"

	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/urlsource"
)

// DBStorage bundles the state database with its repositories
type DBStorage struct {
	DB      *database.DB
	URLRepo *database.URLRepository
	RunRepo *database.RunRepository
}

// NewDBStorage opens the state database and wires the repositories
func NewDBStorage(dbPath string) (*DBStorage, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return &DBStorage{
		DB:      db,
		URLRepo: database.NewURLRepository(db),
		RunRepo: database.NewRunRepository(db),
	}, nil
}

// Close closes the database connection
func (ds *DBStorage) Close() error {
	return ds.DB.Close()
}

// ImportURLsFromFile loads the URL list file and registers every entry as
// a pending target. The returned list keeps the file's order and
// duplicates; the import itself is deduplicated by the database.
func (ds *DBStorage) ImportURLsFromFile(filePath string) ([]string, int, error) {
	urls, err := urlsource.Load(filePath)
	if err != nil {
		return nil, 0, err
	}

	imported, err := ds.URLRepo.ImportURLs(urls)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to import urls: %w", err)
	}

	return urls, imported, nil
}

// SucceededURLs returns the set of URLs recorded as succeeded by earlier
// runs, for resume mode.
func (ds *DBStorage) SucceededURLs() (map[string]bool, error) {
	return ds.URLRepo.GetSucceeded()
}
