package orchestrator

import "linkedin-scraper/internal/models"

// ResultKind tags the outcome of one URL.
type ResultKind int

const (
	// ResultSuccess means the profile was extracted and its row written.
	ResultSuccess ResultKind = iota
	// ResultSkipped means this URL failed but the run continues.
	ResultSkipped
	// ResultFatal means the run must stop here.
	ResultFatal
)

// URLResult is the tagged outcome of processing one URL. Branching on it
// keeps the run loop's continue/abort decisions in one place instead of
// spreading error checks through nested calls.
type URLResult struct {
	URL    string
	Kind   ResultKind
	Record *models.ProfileRecord
	Reason string
	Err    error
}
