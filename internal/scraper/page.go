package scraper

import (
	"context"
	"time"

	"linkedin-scraper/internal/models"
)

// Page is a captured profile page: the document HTML snapshot taken after
// navigation settled, plus where and when it was taken.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// Driver is the authenticated browser session. One driver spans one run:
// Start logs in, Fetch captures one profile page at a time, Close releases
// the browser. Close is idempotent and safe to call even when Start never
// succeeded, so callers can defer it at acquisition.
type Driver interface {
	Start(ctx context.Context, creds models.Credentials) error
	Fetch(ctx context.Context, url string) (*Page, error)
	Close() error
}
