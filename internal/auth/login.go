package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"linkedin-scraper/internal/models"
)

const loginURL = "https://www.linkedin.com/login"

// Login outcome sentinels. All of them mean the session never became
// usable; callers fold them into their own authentication error.
var (
	ErrLoginRejected     = errors.New("login rejected")
	ErrChallengeDetected = errors.New("verification challenge shown")
	ErrLoginTimeout      = errors.New("login confirmation timed out")
)

// URL substrings that confirm an authenticated session.
var loggedInMarkers = []string{"/feed", "linkedin.com/in/", "/mynetwork"}

// URL substrings of checkpoint, captcha and verification pages.
var challengeMarkers = []string{"/checkpoint/", "captcha", "two-step", "/authwall"}

// LoginService handles the LinkedIn login flow
type LoginService struct {
	timeout     time.Duration
	settleDelay time.Duration
}

// NewLoginService creates a new LoginService instance
func NewLoginService(timeout, settleDelay time.Duration) *LoginService {
	return &LoginService{
		timeout:     timeout,
		settleDelay: settleDelay,
	}
}

// Login submits the login form and waits for a post-login indicator within
// the bounded timeout. The credential values are typed into the form and
// never written anywhere else.
func (ls *LoginService) Login(ctx context.Context, creds models.Credentials) error {
	loginCtx, cancel := context.WithTimeout(ctx, ls.timeout)
	defer cancel()

	err := chromedp.Run(loginCtx,
		chromedp.Navigate(loginURL),
		chromedp.Sleep(2*time.Second),

		chromedp.WaitVisible(`#username`, chromedp.ByQuery),
		chromedp.Clear(`#username`, chromedp.ByQuery),
		chromedp.SendKeys(`#username`, creds.Email, chromedp.ByQuery),
		chromedp.Clear(`#password`, chromedp.ByQuery),
		chromedp.SendKeys(`#password`, creds.Password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),

		chromedp.Sleep(ls.settleJitter()),
	)
	if err != nil {
		return fmt.Errorf("login form submission failed: %w", err)
	}

	return ls.confirmLogin(loginCtx)
}

// confirmLogin polls the current location until it lands on an
// authenticated page, a challenge shows up, a login error banner appears,
// or the timeout runs out.
func (ls *LoginService) confirmLogin(ctx context.Context) error {
	for {
		var currentURL string
		if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err != nil {
			return fmt.Errorf("%w: %v", ErrLoginTimeout, err)
		}

		switch {
		case isLoggedInURL(currentURL):
			return nil
		case IsChallengeURL(currentURL):
			return fmt.Errorf("%w: %s", ErrChallengeDetected, currentURL)
		}

		if ls.hasChallengeMarkup(ctx) {
			return ErrChallengeDetected
		}
		if banner := ls.loginErrorBanner(ctx); banner != "" {
			return fmt.Errorf("%w: %s", ErrLoginRejected, banner)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: still on %s", ErrLoginTimeout, currentURL)
		case <-time.After(1 * time.Second):
		}
	}
}

// hasChallengeMarkup probes for captcha frames and verification inputs
// that show up without a checkpoint redirect.
func (ls *LoginService) hasChallengeMarkup(ctx context.Context) bool {
	var found bool
	script := `document.querySelector('iframe[src*="captcha"], input[autocomplete="one-time-code"], input[name="pin"]') !== null`
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &found)); err != nil {
		return false
	}
	return found
}

// loginErrorBanner returns the visible form error, if any.
func (ls *LoginService) loginErrorBanner(ctx context.Context) string {
	var banner string
	script := `(() => {
		const el = document.querySelector('#error-for-username, #error-for-password, .alert-error, .login__form-error, .form-error');
		return el ? el.innerText.trim() : '';
	})()`
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &banner)); err != nil {
		return ""
	}
	return banner
}

// settleJitter varies the post-submit wait so consecutive runs do not look
// identical.
func (ls *LoginService) settleJitter() time.Duration {
	return ls.settleDelay + time.Duration(rand.Intn(2000))*time.Millisecond
}

func isLoggedInURL(url string) bool {
	for _, marker := range loggedInMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}

// IsChallengeURL reports whether url is a checkpoint, captcha or
// verification page rather than regular content.
func IsChallengeURL(url string) bool {
	for _, marker := range challengeMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
