package params

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
)

// Number drives NUMBER parameters. On top of plain fill/verify it carries
// the two verification sub-protocols the platform offers: self-verification
// (the acting user re-enters their own password) and peer verification (a
// second user approves in the same session).
type Number struct {
	base
}

// NewNumber creates the NUMBER handler.
func NewNumber(session *browser.Session, timeout time.Duration) *Number {
	return &Number{base: newBase(session, timeout)}
}

var _ Field = (*Number)(nil)

func (n *Number) inputCandidates() []browser.Candidate {
	return append(typedInputCandidates("NUMBER"), browser.Candidate{
		Selector:    "input[type='number']",
		Description: "native number input",
	})
}

// FillValue is the integer-typed convenience over Fill.
func (n *Number) FillValue(ctx context.Context, label string, value int) error {
	return n.Fill(ctx, label, strconv.Itoa(value))
}

// Fill enters the value and blurs the field so the platform persists it.
func (n *Number) Fill(ctx context.Context, label, value string) error {
	sel, err := n.resolver.ResolveWithin(ctx, "number input for "+label, n.inputCandidates(), n.timeout)
	if err != nil {
		return browser.NewFlowError("number entry", "locate", err)
	}
	if !n.session.Fill(ctx, sel, value, n.timeout) {
		return browser.NewFlowError("number entry", "fill", fmt.Errorf("could not fill number field for %q", label))
	}
	return nil
}

// Verify reads the field back; numeric comparison so "042" matches 42.
func (n *Number) Verify(ctx context.Context, label, expected string) bool {
	sel, err := n.resolver.Resolve(ctx, "number input for "+label, n.inputCandidates())
	if err != nil {
		return false
	}
	got := n.session.InputValue(ctx, sel)
	if got == expected {
		return true
	}
	gotNum, err1 := strconv.ParseFloat(got, 64)
	wantNum, err2 := strconv.ParseFloat(expected, 64)
	return err1 == nil && err2 == nil && gotNum == wantNum
}

// VerifyValue is the integer-typed convenience over Verify.
func (n *Number) VerifyValue(ctx context.Context, label string, expected int) bool {
	return n.Verify(ctx, label, strconv.Itoa(expected))
}

// Enabled reports whether the number input accepts interaction.
func (n *Number) Enabled(ctx context.Context, label string) bool {
	sel, err := n.resolver.Resolve(ctx, "number input for "+label, n.inputCandidates())
	if err != nil {
		return false
	}
	disabled, ok := n.session.Attribute(ctx, sel, "disabled")
	return !ok || disabled == "false"
}

// SelfVerify runs the self-verification protocol: Self Verify, the acting
// user's password, Verify. Terminal state is the value locked in.
func (n *Number) SelfVerify(ctx context.Context, password string) error {
	const flow = "self verification"

	if !n.session.ClickButtonByText(ctx, "Self Verify", n.timeout) {
		return browser.NewFlowError(flow, "self verify button", fmt.Errorf("Self Verify control not found"))
	}

	passwordCandidates := []browser.Candidate{
		{Selector: "input[type='password']", Description: "password input"},
		{Selector: "input[placeholder*='assword']", Description: "password input by placeholder"},
	}
	sel, err := n.resolver.ResolveWithin(ctx, "password prompt", passwordCandidates, n.timeout)
	if err != nil {
		return browser.NewFlowError(flow, "password prompt", err)
	}
	if !n.session.Fill(ctx, sel, password, n.timeout) {
		return browser.NewFlowError(flow, "password entry", fmt.Errorf("password field did not accept input"))
	}

	if !n.session.ClickButtonByText(ctx, "Verify", n.timeout) {
		return browser.NewFlowError(flow, "verify button", fmt.Errorf("Verify control not found"))
	}
	return nil
}
