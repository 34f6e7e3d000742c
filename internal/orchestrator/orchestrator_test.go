package orchestrator

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/output"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/urlsource"
)

var testCreds = models.Credentials{Email: "scraper@example.com", Password: "test-password"}

const (
	urlOne   = "https://www.linkedin.com/in/profile-one/"
	urlTwo   = "https://www.linkedin.com/in/profile-two/"
	urlThree = "https://www.linkedin.com/in/profile-three/"
)

// fakeDriver is an in-memory stand-in for the Chrome session. It serves
// canned HTML per URL and records every call for assertions.
type fakeDriver struct {
	startCalls int
	startErr   error
	fetched    []string
	fetchErrs  map[string]error
	pages      map[string]string
	closeCalls int
	onFetch    func(url string)
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		fetchErrs: make(map[string]error),
		pages:     make(map[string]string),
	}
}

func (f *fakeDriver) Start(_ context.Context, _ models.Credentials) error {
	f.startCalls++
	return f.startErr
}

func (f *fakeDriver) Fetch(_ context.Context, url string) (*scraper.Page, error) {
	f.fetched = append(f.fetched, url)
	if f.onFetch != nil {
		f.onFetch(url)
	}
	if err := f.fetchErrs[url]; err != nil {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		html = profileHTML("Someone " + url)
	}
	return &scraper.Page{URL: url, HTML: html, FetchedAt: time.Now().UTC()}, nil
}

func (f *fakeDriver) Close() error {
	f.closeCalls++
	return nil
}

func profileHTML(name string) string {
	return fmt.Sprintf(`<html><body><main>
		<h1 class="text-heading-xlarge">%s</h1>
		<div class="text-body-medium break-words">Software Engineer at Example Corp</div>
	</main></body></html>`, name)
}

// No h1 and no main element, so extraction must fail.
const brokenHTML = `<html><body><div class="loader">Loading...</div></body></html>`

func testConfig(t *testing.T, urls []string) models.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := models.Config{
		URLsFilePath:    filepath.Join(dir, "urls.txt"),
		OutputFilePath:  filepath.Join(dir, "profiles.csv"),
		DBFilePath:      filepath.Join(dir, "state.db"),
		LogFilePath:     filepath.Join(dir, "scraper.log"),
		Headless:        true,
		LoginTimeout:    time.Second,
		NavTimeout:      time.Second,
		ShutdownTimeout: time.Second,
	}
	require.NoError(t, os.WriteFile(cfg.URLsFilePath, []byte(strings.Join(urls, "\n")+"\n"), 0644))
	return cfg
}

func readCSVRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunWritesRowsInInputOrder(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo, urlThree})
	drv := newFakeDriver()

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 4)
	assert.Equal(t, output.Header, rows[0])
	assert.Equal(t, urlOne, rows[1][0])
	assert.Equal(t, urlTwo, rows[2][0])
	assert.Equal(t, urlThree, rows[3][0])

	assert.Equal(t, 1, drv.startCalls)
	assert.Equal(t, 1, drv.closeCalls)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 3, stats.SuccessData)
	assert.Equal(t, 3, stats.RowsWritten())
	assert.False(t, stats.Aborted)
	assert.False(t, stats.Interrupted)
}

func TestRunContinuesPastExtractionFailure(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo, urlThree})
	drv := newFakeDriver()
	drv.pages[urlTwo] = brokenHTML

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 3)
	assert.Equal(t, urlOne, rows[1][0])
	assert.Equal(t, urlThree, rows[2][0])

	assert.Equal(t, []string{urlOne, urlTwo, urlThree}, drv.fetched)
	assert.Equal(t, 1, drv.closeCalls)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.SuccessData)
	assert.False(t, stats.Aborted)

	db, err := database.New(cfg.DBFilePath)
	require.NoError(t, err)
	defer db.Close()
	byStatus, total, err := database.NewURLRepository(db).GetStats()
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, byStatus[database.StatusFailed])
	assert.Equal(t, 2, byStatus[database.StatusSuccessData])
}

func TestRunAbortsOnAccessDenied(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo, urlThree})
	drv := newFakeDriver()
	drv.fetchErrs[urlTwo] = fmt.Errorf("%w: redirected to login wall", scraper.ErrAccessDenied)

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 2)
	assert.Equal(t, urlOne, rows[1][0])

	// The third URL must never be requested after the abort.
	assert.Equal(t, []string{urlOne, urlTwo}, drv.fetched)
	assert.Equal(t, 1, drv.closeCalls)

	stats := s.Stats()
	assert.True(t, stats.Aborted)
	assert.Equal(t, 1, stats.Blocked)
	assert.Equal(t, 1, stats.SuccessData)
}

func TestRunAuthFailureClosesDriver(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo})
	drv := newFakeDriver()
	drv.startErr = fmt.Errorf("%w: challenge detected", scraper.ErrAuthentication)

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)

	err = s.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, scraper.ErrAuthentication)

	assert.Empty(t, drv.fetched)
	assert.Equal(t, 1, drv.closeCalls)
	assert.True(t, s.Stats().Aborted)

	// Header only, no data rows.
	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 1)
	assert.Equal(t, output.Header, rows[0])
}

func TestNewWithoutCredentialsNeverTouchesDriver(t *testing.T) {
	cfg := testConfig(t, []string{urlOne})
	drv := newFakeDriver()

	_, err := NewWithDriver(cfg, models.Credentials{}, drv)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingCredentials)

	assert.Zero(t, drv.startCalls)
	assert.Zero(t, drv.closeCalls)
	assert.Empty(t, drv.fetched)
}

func TestNewMissingURLFile(t *testing.T) {
	cfg := testConfig(t, []string{urlOne})
	cfg.URLsFilePath = filepath.Join(t.TempDir(), "does-not-exist.txt")
	drv := newFakeDriver()

	_, err := NewWithDriver(cfg, testCreds, drv)
	require.Error(t, err)
	assert.ErrorIs(t, err, urlsource.ErrSourceNotFound)
	assert.Zero(t, drv.startCalls)
}

func TestRunResumeSkipsScrapedURLs(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo})

	first, err := NewWithDriver(cfg, testCreds, newFakeDriver())
	require.NoError(t, err)
	require.NoError(t, first.Run())

	// Second run sees one extra URL and must only fetch that one.
	require.NoError(t, os.WriteFile(cfg.URLsFilePath,
		[]byte(strings.Join([]string{urlOne, urlTwo, urlThree}, "\n")+"\n"), 0644))
	cfg.Resume = true
	drv := newFakeDriver()

	second, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)
	require.NoError(t, second.Run())

	assert.Equal(t, []string{urlThree}, drv.fetched)

	stats := second.Stats()
	assert.Equal(t, 2, stats.ResumeSkipped)
	assert.Equal(t, 1, stats.Processed)

	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 4)
	assert.Equal(t, urlThree, rows[3][0])
}

func TestRunStopsOnShutdownFlag(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo, urlThree})
	drv := newFakeDriver()

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)

	// Request shutdown while the first profile is being fetched.
	drv.onFetch = func(string) {
		atomic.StoreInt32(&s.shutdownRequested, 1)
	}
	require.NoError(t, s.Run())

	assert.Equal(t, []string{urlOne}, drv.fetched)
	assert.Equal(t, 1, drv.closeCalls)

	stats := s.Stats()
	assert.True(t, stats.Interrupted)
	assert.Equal(t, 1, stats.Processed)

	rows := readCSVRows(t, cfg.OutputFilePath)
	require.Len(t, rows, 2)
	assert.Equal(t, urlOne, rows[1][0])
}

func TestRunRecordPersisted(t *testing.T) {
	cfg := testConfig(t, []string{urlOne, urlTwo})
	drv := newFakeDriver()

	s, err := NewWithDriver(cfg, testCreds, drv)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	db, err := database.New(cfg.DBFilePath)
	require.NoError(t, err)
	defer db.Close()

	saved, err := database.NewRunRepository(db).GetRun(s.Stats().RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Total)
	assert.Equal(t, 2, saved.Processed)
	assert.False(t, saved.FinishedAt.IsZero())
}
