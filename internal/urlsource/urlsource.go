package urlsource

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrSourceNotFound indicates the URL list file does not exist.
var ErrSourceNotFound = errors.New("url source not found")

// Load reads the newline-delimited URL list at path into an ordered slice.
// Blank lines and # comment lines are skipped, everything else is kept
// as-is: order and duplicates are preserved, and no URL validation happens
// here. Malformed entries surface later as per-URL failures.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open url source %s: %w", path, err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url source %s: %w", path, err)
	}

	return urls, nil
}
