package browser

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// Low-level waits follow the suite-wide policy: element-not-found and
// timeout are swallowed into a boolean so callers can treat them as soft
// signals. Flows that cannot proceed without the element wrap the false
// into a FlowError at their own level.

// WaitVisible waits for a selector to become visible within the timeout.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) bool {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("Element not visible within timeout")
		return false
	}
	return true
}

// WaitGone waits for a selector to stop matching (element removed or
// hidden).
func (s *Session) WaitGone(ctx context.Context, selector string, timeout time.Duration) bool {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.WaitNotPresent(selector, chromedp.ByQuery)); err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("Element still present after timeout")
		return false
	}
	return true
}

// WaitForText polls until the element's text contains the expected
// substring.
func (s *Session) WaitForText(ctx context.Context, selector, expected string, timeout time.Duration) bool {
	found := false
	_ = s.PollUntil(ctx, PollOptions{Timeout: timeout, Interval: 250 * time.Millisecond}, func(pollCtx context.Context) (bool, error) {
		var text string
		if err := chromedp.Run(pollCtx, chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
			return false, nil
		}
		if strings.Contains(text, expected) {
			found = true
			return true, nil
		}
		return false, nil
	})
	return found
}

// WaitForURLContains polls the location until it contains the fragment.
func (s *Session) WaitForURLContains(ctx context.Context, fragment string, timeout time.Duration) bool {
	found := false
	_ = s.PollUntil(ctx, PollOptions{Timeout: timeout, Interval: 250 * time.Millisecond}, func(pollCtx context.Context) (bool, error) {
		if strings.Contains(s.CurrentURL(pollCtx), fragment) {
			found = true
			return true, nil
		}
		return false, nil
	})
	return found
}

// GetText reads an element's text, returning empty on any failure.
func (s *Session) GetText(ctx context.Context, selector string) string {
	var text string
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// IsVisible reports whether the selector currently matches a visible
// element, without waiting.
func (s *Session) IsVisible(ctx context.Context, selector string) bool {
	var visible bool
	script := `(() => {
		const el = document.querySelector(` + jsString(selector) + `);
		if (!el) return false;
		const rect = el.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0;
	})()`
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.Evaluate(script, &visible)); err != nil {
		return false
	}
	return visible
}

// PollOptions bounds a polling loop. OnProgress fires at ProgressEvery
// while the condition is still false; OnSnapshot likewise, for periodic
// screenshots during long monitors.
type PollOptions struct {
	Timeout       time.Duration
	Interval      time.Duration
	ProgressEvery time.Duration
	OnProgress    func(elapsed time.Duration)
	SnapshotEvery time.Duration
	OnSnapshot    func(elapsed time.Duration)
}

// PollUntil runs the condition until it reports done, errors, or the budget
// expires. The loop is paced by a rate limiter so a short interval cannot
// turn into a busy spin against the CDP connection.
func (s *Session) PollUntil(ctx context.Context, opts PollOptions, condition func(ctx context.Context) (bool, error)) error {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}

	limiter := rate.NewLimiter(rate.Every(opts.Interval), 1)
	pollCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	lastProgress := start
	lastSnapshot := start

	for {
		if err := limiter.Wait(pollCtx); err != nil {
			// Distinguish caller cancellation from the poll budget running out.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return context.DeadlineExceeded
		}

		done, err := condition(pollCtx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		elapsed := time.Since(start)
		if opts.OnProgress != nil && opts.ProgressEvery > 0 && time.Since(lastProgress) >= opts.ProgressEvery {
			opts.OnProgress(elapsed)
			lastProgress = time.Now()
		}
		if opts.OnSnapshot != nil && opts.SnapshotEvery > 0 && time.Since(lastSnapshot) >= opts.SnapshotEvery {
			opts.OnSnapshot(elapsed)
			lastSnapshot = time.Now()
		}
	}
}

func jsString(s string) string {
	replaced := strings.ReplaceAll(s, `\`, `\\`)
	replaced = strings.ReplaceAll(replaced, `'`, `\'`)
	return "'" + replaced + "'"
}
