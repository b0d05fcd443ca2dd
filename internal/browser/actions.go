package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// Click waits for the selector and clicks it. Returns false instead of an
// error when the element never became clickable.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) bool {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := s.Run(opCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("Click failed")
		return false
	}
	return true
}

// ClickButtonByText clicks the first button whose text contains the given
// string. Buttons on the platform rarely carry stable ids, so text match is
// the primary strategy.
func (s *Session) ClickButtonByText(ctx context.Context, text string, timeout time.Duration) bool {
	xpath := fmt.Sprintf(`//button[contains(normalize-space(.), %s)]`, xpathString(text))
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := s.Run(opCtx,
		chromedp.WaitVisible(xpath, chromedp.BySearch),
		chromedp.Click(xpath, chromedp.BySearch),
	)
	if err != nil {
		s.log.Debug().Str("text", text).Err(err).Msg("Button click by text failed")
		return false
	}
	return true
}

// Fill clears the field, types the value and fires the blur the platform
// needs to persist it. Tolerates a field that is not yet interactive within
// the timeout budget.
func (s *Session) Fill(ctx context.Context, selector, value string, timeout time.Duration) bool {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := s.Run(opCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("Fill failed")
		return false
	}
	s.Blur(ctx, selector)
	return true
}

// Blur defocuses the element and dispatches the change event React-style
// forms listen for.
func (s *Session) Blur(ctx context.Context, selector string) {
	script := `(() => {
		const el = document.querySelector(` + jsString(selector) + `);
		if (!el) return;
		el.dispatchEvent(new Event('change', {bubbles: true}));
		el.blur();
	})()`
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.Evaluate(script, nil)); err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("Blur failed")
	}
}

// InputValue reads an input's current value, empty on failure.
func (s *Session) InputValue(ctx context.Context, selector string) string {
	var value string
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.Value(selector, &value, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return ""
	}
	return value
}

// Attribute reads an attribute from the first match; ok is false when the
// element or attribute is absent.
func (s *Session) Attribute(ctx context.Context, selector, name string) (string, bool) {
	var value string
	var ok bool
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.AttributeValue(selector, name, &value, &ok, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return "", false
	}
	return value, ok
}

// OuterHTML captures the serialized HTML of the first match, empty on
// failure. Used to hand DOM fragments to goquery-based classifiers.
func (s *Session) OuterHTML(ctx context.Context, selector string) string {
	var html string
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := chromedp.Run(opCtx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery)); err != nil {
		s.log.Debug().Str("selector", selector).Err(err).Msg("OuterHTML capture failed")
		return ""
	}
	return html
}

// PressEscape sends the Escape key to the page, closing open dropdowns and
// modals.
func (s *Session) PressEscape(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = chromedp.Run(opCtx, chromedp.KeyEvent(kb.Escape))
}

// xpathString quotes a literal for embedding in an XPath expression.
func xpathString(s string) string {
	return "'" + s + "'"
}
