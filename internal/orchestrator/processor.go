package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/utils"
)

// processAll walks the URL list in input order. A skipped URL never
// stops the run; an access-denied signal or a broken output file does.
func (s *Scraper) processAll() {
	fetched := 0
	for i, url := range s.urls {
		if atomic.LoadInt32(&s.shutdownRequested) == 1 {
			s.stats.Interrupted = true
			s.logf("shutdown requested, stopping with %d/%d processed", s.stats.Processed, s.stats.Total)
			fmt.Printf("\n⚠️  Stopping early: %d/%d URLs processed\n", s.stats.Processed, s.stats.Total)
			return
		}

		if s.skipDone[url] {
			s.stats.ResumeSkipped++
			s.logf("resume: skipping %s, already scraped", url)
			fmt.Printf("⏭️  [%d/%d] Already scraped: %s\n", i+1, len(s.urls), url)
			continue
		}

		// Pause between page loads, not before the first one.
		if fetched > 0 {
			delay := utils.RandomDelay(s.config.MinProfileDelay, s.config.MaxProfileDelay)
			if delay > 0 {
				fmt.Printf("⏳ Waiting %s before next profile...\n", utils.FormatDuration(delay))
				time.Sleep(delay)
			}
		}
		fetched++

		fmt.Printf("🔍 [%d/%d] %s\n", i+1, len(s.urls), url)
		result := s.processURL(url)
		s.recordResult(result)

		if result.Kind == ResultFatal {
			s.stats.Aborted = true
			s.logf("aborting run: %s", result.Reason)
			fmt.Printf("\n🛑 Aborting run: %s\n", result.Reason)
			return
		}
	}
}

// processURL fetches one profile page, extracts it and appends the CSV
// row. Classification of the outcome lives here so the run loop only
// has to branch on the result kind.
func (s *Scraper) processURL(url string) URLResult {
	page, err := s.driver.Fetch(context.Background(), url)
	if err != nil {
		if errors.Is(err, scraper.ErrAccessDenied) {
			return URLResult{URL: url, Kind: ResultFatal, Reason: "access denied by LinkedIn", Err: err}
		}
		return URLResult{URL: url, Kind: ResultSkipped, Reason: "navigation failed", Err: err}
	}

	record, err := scraper.Extract(page)
	if err != nil {
		return URLResult{URL: url, Kind: ResultSkipped, Reason: "extraction failed", Err: err}
	}

	if err := s.writer.Append(record); err != nil {
		// Nothing later can be persisted once the output file is broken.
		return URLResult{URL: url, Kind: ResultFatal, Reason: "output write failed", Err: err}
	}

	return URLResult{URL: url, Kind: ResultSuccess, Record: &record}
}

// recordResult updates counters, per-URL database state and the console
// for one processed URL.
func (s *Scraper) recordResult(res URLResult) {
	s.stats.Processed++
	if err := s.dbStorage.URLRepo.IncrementAttempts(res.URL); err != nil {
		s.logf("warning: failed to count attempt for %s: %v", res.URL, err)
	}

	switch res.Kind {
	case ResultSuccess:
		status := database.StatusSuccessData
		if !res.Record.HasData() {
			status = database.StatusSuccessEmpty
			s.stats.SuccessEmpty++
			fmt.Println("   ✅ Scraped, no visible profile fields")
		} else {
			s.stats.SuccessData++
			fmt.Printf("   ✅ %s\n", res.Record.Name)
		}
		if err := s.dbStorage.URLRepo.UpdateProfile(res.URL, *res.Record, status); err != nil {
			s.logf("warning: failed to save profile for %s: %v", res.URL, err)
		}
		s.logf("success %s name=%q headline=%q", res.URL, res.Record.Name, res.Record.Headline)

	case ResultSkipped:
		s.stats.Failed++
		if err := s.dbStorage.URLRepo.UpdateStatus(res.URL, database.StatusFailed, res.Err.Error()); err != nil {
			s.logf("warning: failed to mark %s failed: %v", res.URL, err)
		}
		fmt.Printf("   ❌ Skipped, %s: %v\n", res.Reason, res.Err)
		s.logf("skipped %s, %s: %v", res.URL, res.Reason, res.Err)

	case ResultFatal:
		status := database.StatusFailed
		if errors.Is(res.Err, scraper.ErrAccessDenied) {
			status = database.StatusBlocked
			s.stats.Blocked++
		} else {
			s.stats.Failed++
		}
		if err := s.dbStorage.URLRepo.UpdateStatus(res.URL, status, res.Err.Error()); err != nil {
			s.logf("warning: failed to mark %s %s: %v", res.URL, status, err)
		}
		s.logf("fatal at %s, %s: %v", res.URL, res.Reason, res.Err)
	}
}
