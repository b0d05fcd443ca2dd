// Package params implements one handler per task parameter type. Every
// handler follows the same contract: Fill tolerates a field that is not yet
// interactive within the timeout budget and fires the blur the platform
// needs to persist the value; Verify is a best-effort read that returns
// false rather than an error when the field cannot be located.
package params

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/common"
)

// Field is the common contract shared by all parameter handlers.
type Field interface {
	Fill(ctx context.Context, label, value string) error
	Verify(ctx context.Context, label, expected string) bool
	Enabled(ctx context.Context, label string) bool
}

// page is the session surface the handlers drive. *browser.Session
// satisfies it; round-trip tests substitute a scripted page.
type page interface {
	Click(ctx context.Context, selector string, timeout time.Duration) bool
	ClickButtonByText(ctx context.Context, text string, timeout time.Duration) bool
	Fill(ctx context.Context, selector, value string, timeout time.Duration) bool
	InputValue(ctx context.Context, selector string) string
	GetText(ctx context.Context, selector string) string
	Attribute(ctx context.Context, selector, name string) (string, bool)
	IsVisible(ctx context.Context, selector string) bool
	PressEscape(ctx context.Context)
	PollUntil(ctx context.Context, opts browser.PollOptions, condition func(ctx context.Context) (bool, error)) error
}

var _ page = (*browser.Session)(nil)

// base carries the pieces every handler needs.
type base struct {
	session  page
	resolver *browser.Resolver
	timeout  time.Duration
	log      arbor.ILogger
}

func newBase(session *browser.Session, timeout time.Duration) base {
	return base{
		session:  session,
		resolver: browser.NewResolver(session),
		timeout:  timeout,
		log:      common.GetLogger(),
	}
}

// typedInputCandidates builds the shared fallback chain for parameter
// inputs tagged with a data-type attribute.
func typedInputCandidates(dataType string) []browser.Candidate {
	return []browser.Candidate{
		{
			Selector:    "input[data-type='" + dataType + "']",
			Description: "input by data-type " + dataType,
		},
		{
			Selector:    "input[data-testid='input-element'][placeholder='Write here']",
			Description: "input by testid and placeholder",
		},
		{
			Selector:    "input[data-testid='input-element']",
			Description: "input by testid",
		},
	}
}

// containsFold is a case-insensitive substring check.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// withTextFilter returns a copy of the candidates requiring an exact text
// match on each.
func withTextFilter(candidates []browser.Candidate, text string) []browser.Candidate {
	filtered := make([]browser.Candidate, len(candidates))
	for i, c := range candidates {
		c.Text = text
		filtered[i] = c
	}
	return filtered
}
