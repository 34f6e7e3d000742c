package auth

import (
	"context"
	"fmt"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// fallbackUserAgent is used when the randomizer comes up empty (it scrapes
// a public UA list and can fail without network access).
const fallbackUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// stealthScript hides the webdriver flag, the first thing LinkedIn's bot
// detection probes for.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// BrowserManager handles Chrome browser automation
type BrowserManager struct {
	headless bool
}

// NewBrowserManager creates a new BrowserManager instance
func NewBrowserManager(headless bool) *BrowserManager {
	return &BrowserManager{headless: headless}
}

// CreateBrowserContext creates and configures a Chrome browser context
func (bm *BrowserManager) CreateBrowserContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", bm.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.Flag("disable-images", true),
		chromedp.UserAgent(bm.userAgent()),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	combinedCancel := func() {
		browserCancel()
		cancel()
	}

	// Enable network events and install the stealth script before the
	// first navigation.
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		combinedCancel()
		return nil, nil, fmt.Errorf("failed to initialize browser context: %w", err)
	}

	return browserCtx, combinedCancel, nil
}

// userAgent picks a random desktop Chrome user agent for this run.
func (bm *BrowserManager) userAgent() string {
	if ua := browser.Chrome(); ua != "" {
		return ua
	}
	return fallbackUserAgent
}
