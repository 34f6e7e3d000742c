package orchestrator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/output"
	"linkedin-scraper/internal/scraper"
	"linkedin-scraper/internal/storage"
	"linkedin-scraper/internal/utils"
)

// Scraper coordinates one sequential scraping run: login once, walk the
// URL list in order, append one CSV row per successfully extracted
// profile, and record per-URL state in SQLite.
type Scraper struct {
	// Configuration
	config models.Config
	creds  models.Credentials

	// Core components
	driver    scraper.Driver
	writer    *output.Writer
	dbStorage *storage.DBStorage

	// Run state
	urls     []string
	skipDone map[string]bool
	stats    models.RunStats
	finished bool

	// Shutdown handling
	shutdownRequested int32

	// Logging
	logFile   *os.File
	logWriter *bufio.Writer
	logChan   chan string
	logGroup  errgroup.Group
}

// New creates a fully wired Scraper using a real Chrome-backed driver.
func New(cfg models.Config, creds models.Credentials) (*Scraper, error) {
	return NewWithDriver(cfg, creds, scraper.NewChromeDriver(cfg))
}

// NewWithDriver creates a Scraper around the given session driver. The
// driver is only constructed here, never started: login happens in Run,
// so a wiring failure exits before any browser session begins.
func NewWithDriver(cfg models.Config, creds models.Credentials, driver scraper.Driver) (*Scraper, error) {
	if creds.IsZero() {
		return nil, fmt.Errorf("%w: cannot start a run without credentials", config.ErrMissingCredentials)
	}

	dbStorage, err := storage.NewDBStorage(cfg.DBFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state database: %w", err)
	}

	urls, imported, err := dbStorage.ImportURLsFromFile(cfg.URLsFilePath)
	if err != nil {
		dbStorage.Close()
		return nil, err
	}
	if len(urls) == 0 {
		dbStorage.Close()
		return nil, fmt.Errorf("no usable URLs in %s", cfg.URLsFilePath)
	}

	writer, err := output.NewWriter(cfg.OutputFilePath)
	if err != nil {
		dbStorage.Close()
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	if err := writer.EnsureHeader(); err != nil {
		writer.Close()
		dbStorage.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	s := &Scraper{
		config:    cfg,
		creds:     creds,
		driver:    driver,
		writer:    writer,
		dbStorage: dbStorage,
		urls:      urls,
		logChan:   make(chan string, 1000),
	}

	if cfg.Resume {
		s.skipDone, err = dbStorage.SucceededURLs()
		if err != nil {
			s.closeComponents()
			return nil, fmt.Errorf("failed to load resume state: %w", err)
		}
	}

	if err := s.startLogPipeline(); err != nil {
		s.closeComponents()
		return nil, err
	}

	s.stats = models.RunStats{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Total:     len(urls),
	}
	if err := dbStorage.RunRepo.StartRun(s.stats); err != nil {
		s.logf("warning: failed to record run start: %v", err)
	}

	utils.SetupSignalHandling(&s.shutdownRequested, nil)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("🚀 LINKEDIN SCRAPER INITIALIZED")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("🆔 Run ID: %s\n", s.stats.RunID)
	fmt.Printf("🔗 URLs to process: %d (%d new in state db)\n", len(urls), imported)
	if cfg.Resume {
		fmt.Printf("⏭️  Resume mode: %d already scraped\n", len(s.skipDone))
	}
	fmt.Printf("📄 Output file: %s\n", cfg.OutputFilePath)
	fmt.Printf("📝 Log file: %s\n", cfg.LogFilePath)
	fmt.Println(strings.Repeat("=", 60))

	s.logf("run initialized: %d urls, %d newly imported", len(urls), imported)
	return s, nil
}

// startLogPipeline opens the log file and starts the single writer
// goroutine that drains logChan until it is closed.
func (s *Scraper) startLogPipeline() error {
	logFile, err := os.OpenFile(s.config.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.logFile = logFile
	s.logWriter = bufio.NewWriter(logFile)

	s.logGroup.Go(func() error {
		for line := range s.logChan {
			if _, err := s.logWriter.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("log write failed: %w", err)
			}
		}
		if err := s.logWriter.Flush(); err != nil {
			return fmt.Errorf("log flush failed: %w", err)
		}
		return s.logFile.Close()
	})
	return nil
}

// logf queues a timestamped line for the log file. Drops the line when
// the channel is full so the run loop never blocks on logging.
func (s *Scraper) logf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] [run %s] %s",
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		s.stats.RunID[:8],
		fmt.Sprintf(format, args...))
	select {
	case s.logChan <- line:
	default:
		fmt.Fprintf(os.Stderr, "⚠️ Log channel full, dropping: %s\n", line)
	}
}

// Run executes the scraping run. It returns an error only when the
// session could not be established; every later outcome, including an
// access-denied abort or an interrupt, finishes the run normally and is
// reported through the final summary.
func (s *Scraper) Run() error {
	defer func() {
		if err := s.driver.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ Failed to close browser session: %v\n", err)
		}
	}()

	fmt.Println("\n🔐 Logging in to LinkedIn...")
	s.logf("authenticating")
	if err := s.driver.Start(context.Background(), s.creds); err != nil {
		s.stats.Aborted = true
		s.logf("authentication failed: %v", err)
		s.finish()
		return fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Println("✅ Logged in, session ready")
	s.logf("session ready")

	s.processAll()

	s.finish()
	return nil
}

// Stats returns a copy of the current run statistics.
func (s *Scraper) Stats() models.RunStats {
	return s.stats
}

// finish closes every component in order, persists the final run record
// and prints the summary. Safe to call once per run.
func (s *Scraper) finish() {
	if s.finished {
		return
	}
	s.finished = true

	s.stats.FinishedAt = time.Now().UTC()
	s.logf("run finished: %d/%d processed, %d rows written",
		s.stats.Processed, s.stats.Total, s.stats.RowsWritten())

	if err := s.dbStorage.RunRepo.FinishRun(s.stats); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️ Failed to record run result: %v\n", err)
	}

	s.closeComponents()
	s.printFinalResults()
}

// closeComponents releases the writer, database and log pipeline. The
// browser session is closed by Run's deferred call, not here, so wiring
// failures in NewWithDriver can also use this path.
func (s *Scraper) closeComponents() {
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ Failed to close output file: %v\n", err)
		}
		s.writer = nil
	}
	if s.dbStorage != nil {
		if err := s.dbStorage.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ Failed to close state database: %v\n", err)
		}
		s.dbStorage = nil
	}
	if s.logFile != nil {
		close(s.logChan)
		if err := s.logGroup.Wait(); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ Log pipeline error: %v\n", err)
		}
		s.logFile = nil
	}
}

// printFinalResults prints the end-of-run summary table.
func (s *Scraper) printFinalResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	switch {
	case s.stats.Aborted:
		fmt.Println("🛑 RUN ABORTED")
	case s.stats.Interrupted:
		fmt.Println("⚠️  RUN INTERRUPTED")
	default:
		fmt.Println("🎉 RUN COMPLETE")
	}
	fmt.Println(strings.Repeat("=", 80))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Outcome", "Count"})
	t.AppendRows([]table.Row{
		{"Profiles with data", s.stats.SuccessData},
		{"Profiles without visible data", s.stats.SuccessEmpty},
		{"Skipped (navigation or extraction)", s.stats.Failed},
		{"Blocked by LinkedIn", s.stats.Blocked},
	})
	if s.config.Resume {
		t.AppendRow(table.Row{"Skipped (already scraped)", s.stats.ResumeSkipped})
	}
	t.AppendFooter(table.Row{"CSV rows written", s.stats.RowsWritten()})
	t.Render()

	if s.stats.Processed > 0 {
		successRate := float64(s.stats.SuccessData+s.stats.SuccessEmpty) / float64(s.stats.Processed) * 100
		fmt.Printf("\n📊 Processed: %d/%d (%.1f%% success)\n",
			s.stats.Processed, s.stats.Total, successRate)
	}
	fmt.Printf("⏱️  Duration: %s\n", utils.FormatDuration(s.stats.Duration()))
	fmt.Printf("💾 Results in: %s\n", s.config.OutputFilePath)
	fmt.Printf("🗄️  State in: %s\n", s.config.DBFilePath)
	fmt.Println(strings.Repeat("=", 80))
}
