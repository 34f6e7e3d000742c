package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"linkedin-scraper/internal/auth"
	"linkedin-scraper/internal/models"
)

type sessionState int

const (
	stateUninitialized sessionState = iota
	stateAuthenticating
	stateReady
	stateClosed
)

// URL substrings that mean the session was served a login wall instead of
// the requested profile.
var blockedMarkers = []string{"/authwall", "/uas/login", "/login"}

// ChromeDriver drives one authenticated Chrome session for the whole run.
// Start logs in exactly once, Fetch serves one URL at a time, Close
// releases the browser and is safe to call in any state, any number of
// times.
type ChromeDriver struct {
	cfg models.Config

	mu         sync.Mutex
	state      sessionState
	browserCtx context.Context
	cancel     context.CancelFunc

	closeOnce sync.Once
}

// NewChromeDriver creates a new ChromeDriver instance
func NewChromeDriver(cfg models.Config) *ChromeDriver {
	return &ChromeDriver{cfg: cfg}
}

// Start launches the headless browser and signs in. On failure the session
// never reaches Ready and Close remains the only valid call.
func (d *ChromeDriver) Start(ctx context.Context, creds models.Credentials) error {
	d.mu.Lock()
	if d.state != stateUninitialized {
		d.mu.Unlock()
		return fmt.Errorf("%w: session already used", ErrAuthentication)
	}
	d.state = stateAuthenticating
	d.mu.Unlock()

	manager := auth.NewBrowserManager(d.cfg.Headless)
	browserCtx, cancel, err := manager.CreateBrowserContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	d.mu.Lock()
	d.browserCtx = browserCtx
	d.cancel = cancel
	d.mu.Unlock()

	login := auth.NewLoginService(d.cfg.LoginTimeout, d.cfg.SettleDelay)
	if err := login.Login(browserCtx, creds); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	d.mu.Lock()
	d.state = stateReady
	d.mu.Unlock()

	return nil
}

// Fetch navigates to url, waits for the page to settle within the bounded
// timeout, and returns the captured HTML. A pure timeout is retried once
// with a jittered backoff before it counts as a navigation failure; a
// login-wall redirect is reported as access denied immediately.
func (d *ChromeDriver) Fetch(ctx context.Context, url string) (*Page, error) {
	d.mu.Lock()
	if d.state != stateReady {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: session is not ready", ErrNavigation)
	}
	browserCtx := d.browserCtx
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	for attempt := 0; ; attempt++ {
		page, err := d.capture(browserCtx, url)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrAccessDenied) {
			return nil, err
		}
		if attempt >= d.cfg.NavRetries || !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		time.Sleep(retryBackoff())
	}
}

// capture runs one bounded navigate-and-snapshot pass.
func (d *ChromeDriver) capture(browserCtx context.Context, url string) (*Page, error) {
	navCtx, cancel := context.WithTimeout(browserCtx, d.cfg.NavTimeout)
	defer cancel()

	var html, currentURL string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(d.cfg.SettleDelay),
		chromedp.Location(&currentURL),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}

	if isBlockedURL(currentURL) {
		return nil, fmt.Errorf("%w: redirected to %s", ErrAccessDenied, currentURL)
	}

	return &Page{URL: url, HTML: html, FetchedAt: time.Now().UTC()}, nil
}

// Close tears the session down and releases the browser. Idempotent, and
// valid in every state including before Start, so callers can defer it at
// acquisition.
func (d *ChromeDriver) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		cancel := d.cancel
		d.cancel = nil
		d.state = stateClosed
		d.mu.Unlock()

		if cancel != nil {
			cancel()
		}
	})
	return nil
}

func isBlockedURL(url string) bool {
	if auth.IsChallengeURL(url) {
		return true
	}
	for _, marker := range blockedMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}

// retryBackoff spaces the single navigation retry out by 2-4s.
func retryBackoff() time.Duration {
	return 2*time.Second + time.Duration(rand.Intn(2000))*time.Millisecond
}
