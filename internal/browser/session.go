package browser

import (
	"context"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
)

// Session owns one browser instance: the exec allocator, the browser
// context, and the teardown stack. Each test (or each side of a concurrent
// scenario) runs its own Session; sessions share nothing.
type Session struct {
	Ctx    context.Context
	config *common.BrowserConfig
	log    arbor.ILogger

	cancels []context.CancelFunc
}

// NewSession launches a browser with the configured launch options. The
// fake-media-stream flags keep camera capture flows from blocking on a
// permission prompt.
func NewSession(parent context.Context, config *common.BrowserConfig) (*Session, error) {
	if config == nil {
		config = common.NewDefaultBrowserConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("use-fake-ui-for-media-stream", true),
		chromedp.Flag("use-fake-device-for-media-stream", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		Ctx:     browserCtx,
		config:  config,
		log:     common.GetLogger(),
		cancels: []context.CancelFunc{allocCancel, browserCancel},
	}

	// Start the browser process up front so launch failures surface here
	// rather than on the first action.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, err
	}

	s.log.Debug().
		Bool("headless", config.Headless).
		Int("slow_mo_ms", config.SlowMoMs).
		Msg("Browser session started")

	return s, nil
}

// Close tears the session down in reverse order of creation.
func (s *Session) Close() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
}

// Config returns the launch configuration the session was built with.
func (s *Session) Config() *common.BrowserConfig {
	return s.config
}

// Run executes chromedp actions on the session, applying the configured
// slow-motion pause after the batch when one is set.
func (s *Session) Run(ctx context.Context, actions ...chromedp.Action) error {
	if err := chromedp.Run(ctx, actions...); err != nil {
		return err
	}
	if delay := s.config.SlowMo(); delay > 0 {
		time.Sleep(delay)
	}
	return nil
}

// RunWithTimeout executes actions under a per-operation deadline.
func (s *Session) RunWithTimeout(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Run(opCtx, actions...)
}

// Navigate loads a URL and waits for the body to be ready.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	s.log.Debug().Str("url", url).Msg("Navigating")
	return s.RunWithTimeout(ctx, timeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// EnableDownloads routes browser downloads into dir, so exported artifacts
// land next to the test's other outputs.
func (s *Session) EnableDownloads(ctx context.Context, dir string) error {
	return chromedp.Run(ctx,
		cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(dir),
	)
}

// NavigateBack goes one entry back in the session history.
func (s *Session) NavigateBack(ctx context.Context, timeout time.Duration) error {
	return s.RunWithTimeout(ctx, timeout,
		chromedp.NavigateBack(),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// CurrentURL returns the page's current location, or empty when it cannot
// be read.
func (s *Session) CurrentURL(ctx context.Context) string {
	var url string
	if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
		s.log.Warn().Err(err).Msg("Could not read current URL")
		return ""
	}
	return url
}
