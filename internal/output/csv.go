package output

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"

	"linkedin-scraper/internal/models"
)

// Header is the fixed column layout of the output file.
var Header = []string{"url", "name", "headline", "location", "current_role", "scraped_at"}

// timeLayout formats the scraped_at column.
const timeLayout = "2006-01-02 15:04:05"

// ErrWriterClosed is returned for writes after Close.
var ErrWriterClosed = errors.New("output writer is closed")

// Writer appends profile records to a CSV file. The file is opened in
// append mode so re-runs extend it instead of truncating, and every row is
// flushed and synced individually: a crash loses at most the in-flight
// record.
type Writer struct {
	path string

	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
}

// NewWriter opens (or creates) the output file in append mode.
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file %s: %w", path, err)
	}

	buf := bufio.NewWriter(file)
	return &Writer{
		path: path,
		file: file,
		buf:  buf,
		csv:  csv.NewWriter(buf),
	}, nil
}

// EnsureHeader writes the header row when the file is new or still empty.
// Calling it on a non-empty file changes nothing.
func (w *Writer) EnsureHeader() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrWriterClosed
	}

	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat output file %s: %w", w.path, err)
	}
	if info.Size() > 0 {
		return nil
	}

	if err := w.csv.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return w.flush()
}

// Append writes one record as a CSV row and forces it to disk.
func (w *Writer) Append(record models.ProfileRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrWriterClosed
	}

	row := []string{
		record.URL,
		record.Name,
		record.Headline,
		record.Location,
		record.CurrentRole,
		record.ScrapedAt.UTC().Format(timeLayout),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write record for %s: %w", record.URL, err)
	}
	return w.flush()
}

// flush pushes csv -> bufio -> file -> disk. Callers hold the mutex.
func (w *Writer) flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Close flushes pending output and releases the file handle.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	flushErr := w.flush()
	closeErr := w.file.Close()
	w.file = nil

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
