package scraper

import "errors"

// Error taxonomy for a run. The orchestrator classifies per-URL outcomes
// with errors.Is against these sentinels.
var (
	// ErrAuthentication means the session never became usable: login
	// timeout, rejected credentials, or a challenge page.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAccessDenied means the platform served a login wall, checkpoint
	// or block page instead of a profile. Likely an account restriction,
	// so the whole run should stop.
	ErrAccessDenied = errors.New("access denied")

	// ErrNavigation means a profile page did not load within the timeout.
	// Affects one URL only.
	ErrNavigation = errors.New("navigation failed")

	// ErrExtraction means a loaded page had no usable profile structure
	// at all. Affects one URL only.
	ErrExtraction = errors.New("extraction failed")
)
