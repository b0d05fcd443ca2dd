package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
)

// Candidate is one selector probe in an ordered resolve chain. MinY, when
// positive, requires the element's vertical midpoint to sit below that many
// pixels — the header/content heuristic for pages that render several
// visually identical dropdowns. Text, when set, requires the element's
// trimmed text content to equal it exactly. Nth picks among multiple
// passing matches.
type Candidate struct {
	Selector    string
	Description string
	MinY        float64
	Text        string
	Nth         int
}

const resolvedAttr = "data-dwitest-resolved"

// probeResult is what the in-page probe script reports back.
type probeResult struct {
	Found bool `json:"found"`
}

// ProbeFunc checks one candidate and tags the match with the given token.
type ProbeFunc func(ctx context.Context, candidate Candidate, token string) (bool, error)

// Resolver tries ordered candidate selectors until one matches a visible
// element. The winning element is tagged with a unique attribute and the
// attribute selector is returned, so follow-up actions address exactly the
// element the probe chose.
type Resolver struct {
	session *Session
	log     arbor.ILogger

	// probeFn is swappable so the chain logic is testable without a browser.
	probeFn ProbeFunc
}

// NewResolver creates a resolver bound to a session.
func NewResolver(session *Session) *Resolver {
	r := &Resolver{session: session, log: common.GetLogger()}
	r.probeFn = r.probe
	return r
}

// NewProbeResolver creates a resolver over a custom probe, so candidate
// chains can run against scripted pages instead of a browser.
func NewProbeResolver(probe ProbeFunc) *Resolver {
	return &Resolver{log: common.GetLogger(), probeFn: probe}
}

// Resolve probes each candidate in order and returns a selector for the
// first visible match. When every candidate fails it returns
// *ElementNotResolvedError listing all of them.
func (r *Resolver) Resolve(ctx context.Context, target string, candidates []Candidate) (string, error) {
	token := uuid.New().String()

	for i, candidate := range candidates {
		ok, err := r.probeFn(ctx, candidate, token)
		if err != nil {
			r.log.Debug().
				Str("target", target).
				Str("candidate", candidate.Description).
				Err(err).
				Msg("Candidate probe errored")
			continue
		}
		if ok {
			r.log.Debug().
				Str("target", target).
				Int("strategy", i+1).
				Str("candidate", candidate.Description).
				Msg("Resolved element")
			return fmt.Sprintf("[%s=%q]", resolvedAttr, token), nil
		}
	}

	return "", &ElementNotResolvedError{Target: target, Candidates: candidates}
}

// ResolveWithin retries the whole chain until the timeout budget runs out.
// UI transitions often render candidates a beat after the triggering click.
func (r *Resolver) ResolveWithin(ctx context.Context, target string, candidates []Candidate, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		sel, err := r.Resolve(ctx, target, candidates)
		if err == nil {
			return sel, nil
		}
		if time.Now().After(deadline) {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// probe runs an in-page script that finds the candidate's matches, filters
// by visibility and vertical position, picks the Nth survivor and tags it.
func (r *Resolver) probe(ctx context.Context, candidate Candidate, token string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const matches = Array.from(document.querySelectorAll(%q));
		const wantText = %q;
		const passing = [];
		for (const el of matches) {
			const rect = el.getBoundingClientRect();
			if (rect.width === 0 && rect.height === 0) continue;
			const midY = rect.top + rect.height / 2;
			if (%f > 0 && midY <= %f) continue;
			if (wantText !== "" && (el.textContent || "").trim() !== wantText) continue;
			passing.push(el);
		}
		const chosen = passing[%d];
		if (!chosen) return {found: false};
		for (const old of document.querySelectorAll('[%s]')) {
			old.removeAttribute('%s');
		}
		chosen.setAttribute('%s', %q);
		return {found: true};
	})()`, candidate.Selector, candidate.Text, candidate.MinY, candidate.MinY, candidate.Nth,
		resolvedAttr, resolvedAttr, resolvedAttr, token)

	var result probeResult
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := chromedp.Run(probeCtx, chromedp.Evaluate(script, &result)); err != nil {
		return false, err
	}
	return result.Found, nil
}
