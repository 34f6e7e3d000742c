package models

import "time"

// ProfileRecord represents the fields extracted from one LinkedIn profile
// page. Missing fields stay empty strings; only URL and ScrapedAt are
// always set. Company and About feed the state database, the CSV row
// carries the remaining fields.
type ProfileRecord struct {
	URL         string
	Name        string
	Headline    string
	Location    string
	CurrentRole string
	Company     string
	About       string
	ScrapedAt   time.Time
}

// HasData reports whether any profile field beyond the URL was extracted.
func (p ProfileRecord) HasData() bool {
	return p.Name != "" || p.Headline != "" || p.Location != "" ||
		p.CurrentRole != "" || p.Company != "" || p.About != ""
}
