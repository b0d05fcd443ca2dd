package params

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
)

// Peer verification is a five-step protocol with no persisted intermediate
// state: a failure at any step aborts the flow, later steps never run, and
// the surfaced error names the step that failed.

// Peer-verification step names, in execution order.
const (
	StepRequestVerification = "request verification"
	StepSelectReviewer      = "select reviewer"
	StepConfirm             = "confirm"
	StepSameSession         = "same session verification"
	StepApprove             = "approve"
)

// PeerVerifyRequest carries the inputs for one peer-verification run.
type PeerVerifyRequest struct {
	ReviewerUsername string
	ReviewerPassword string
}

// verifierOps is the narrow surface the step machine drives. The browser
// implementation lives below; tests substitute a scripted fake.
type verifierOps interface {
	RequestVerification(ctx context.Context) error
	SelectReviewer(ctx context.Context, username string) error
	Confirm(ctx context.Context) error
	ChooseSameSession(ctx context.Context) error
	Approve(ctx context.Context, password string) error
}

// runPeerVerification executes the five steps in order, wrapping the first
// failure in a FlowError that names the step.
func runPeerVerification(ctx context.Context, ops verifierOps, req PeerVerifyRequest) error {
	const flow = "peer verification"

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{StepRequestVerification, ops.RequestVerification},
		{StepSelectReviewer, func(c context.Context) error { return ops.SelectReviewer(c, req.ReviewerUsername) }},
		{StepConfirm, ops.Confirm},
		{StepSameSession, ops.ChooseSameSession},
		{StepApprove, func(c context.Context) error { return ops.Approve(c, req.ReviewerPassword) }},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return browser.NewFlowError(flow, step.name, err)
		}
	}
	return nil
}

// PeerVerify runs the peer-verification protocol against the live page.
func (n *Number) PeerVerify(ctx context.Context, req PeerVerifyRequest) error {
	return runPeerVerification(ctx, &browserVerifierOps{base: &n.base}, req)
}

// browserVerifierOps drives the real verification UI.
type browserVerifierOps struct {
	base *base
}

func (o *browserVerifierOps) RequestVerification(ctx context.Context) error {
	if !o.base.session.ClickButtonByText(ctx, "Request Verification", o.base.timeout) {
		return fmt.Errorf("Request Verification control not found")
	}
	return nil
}

func (o *browserVerifierOps) SelectReviewer(ctx context.Context, username string) error {
	searchCandidates := []browser.Candidate{
		{Selector: "input[placeholder*='Search']", Description: "reviewer search box"},
		{Selector: "input[type='search']", Description: "native search input"},
	}
	sel, err := o.base.resolver.ResolveWithin(ctx, "reviewer search", searchCandidates, o.base.timeout)
	if err != nil {
		return err
	}
	if !o.base.session.Fill(ctx, sel, username, o.base.timeout) {
		return fmt.Errorf("reviewer search box did not accept input")
	}

	// Each result row renders a checkbox; tick the first filtered row.
	checkboxCandidates := []browser.Candidate{
		{Selector: "input[type='checkbox']", Description: "reviewer row checkbox", MinY: 100},
	}
	checkbox, err := o.base.resolver.ResolveWithin(ctx, "reviewer checkbox for "+username, checkboxCandidates, o.base.timeout)
	if err != nil {
		return err
	}
	if !o.base.session.Click(ctx, checkbox, o.base.timeout) {
		return fmt.Errorf("reviewer checkbox did not accept a click")
	}
	return nil
}

func (o *browserVerifierOps) Confirm(ctx context.Context) error {
	if !o.base.session.ClickButtonByText(ctx, "Confirm", o.base.timeout) {
		return fmt.Errorf("Confirm control not found")
	}
	return nil
}

func (o *browserVerifierOps) ChooseSameSession(ctx context.Context) error {
	if !o.base.session.ClickButtonByText(ctx, "Same Session Verification", o.base.timeout) {
		return fmt.Errorf("Same Session Verification control not found")
	}
	return nil
}

func (o *browserVerifierOps) Approve(ctx context.Context, password string) error {
	if !o.base.session.ClickButtonByText(ctx, "Approve", o.base.timeout) {
		return fmt.Errorf("Approve control not found")
	}

	passwordCandidates := []browser.Candidate{
		{Selector: "input[type='password']", Description: "reviewer password input"},
	}
	sel, err := o.base.resolver.ResolveWithin(ctx, "reviewer password prompt", passwordCandidates, o.base.timeout)
	if err != nil {
		return err
	}
	if !o.base.session.Fill(ctx, sel, password, o.base.timeout) {
		return fmt.Errorf("reviewer password field did not accept input")
	}

	if !o.base.session.ClickButtonByText(ctx, "Verify", o.base.timeout) {
		return fmt.Errorf("Verify control not found")
	}
	return nil
}

// ensure the browser implementation keeps satisfying the ops surface
var _ verifierOps = (*browserVerifierOps)(nil)
