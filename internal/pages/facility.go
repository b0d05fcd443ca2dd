package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
)

// FacilitySelectionPage follows login: the user picks a facility before
// reaching the home screen.
type FacilitySelectionPage struct {
	drv *Driver
}

// SelectFacility types the facility into the selector, picks the matching
// option and proceeds to home.
func (p *FacilitySelectionPage) SelectFacility(ctx context.Context, facility string) (*HomePage, error) {
	const flow = "facility selection"

	inputCandidates := []browser.Candidate{
		{Selector: "#react-select-2-input", Description: "facility select input by id"},
		{Selector: "input.custom-select__input", Description: "custom select input"},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "facility selector", inputCandidates, p.drv.Timeout)
	if err != nil {
		return nil, browser.NewFlowError(flow, "selector", err)
	}
	if !p.drv.Session.Fill(ctx, sel, facility, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "filter", fmt.Errorf("facility selector did not accept input"))
	}

	optionCandidates := withText([]browser.Candidate{
		{Selector: "[role='option']", Description: "facility option by role"},
		{Selector: "[class*='option']", Description: "facility option by class"},
	}, facility)
	option, err := p.drv.Resolver.ResolveWithin(ctx, "facility option "+facility, optionCandidates, p.drv.Timeout)
	if err == nil {
		if !p.drv.Session.Click(ctx, option, p.drv.Timeout) {
			return nil, browser.NewFlowError(flow, "option", fmt.Errorf("facility option did not accept a click"))
		}
	}

	if !p.drv.Session.ClickButtonByText(ctx, "Proceed", p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "proceed", fmt.Errorf("Proceed control not found"))
	}

	if !p.drv.Session.WaitForURLContains(ctx, "/home", p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "home", fmt.Errorf("home page never loaded"))
	}

	p.drv.log.Info().Str("facility", facility).Msg("Facility selected")
	return &HomePage{drv: p.drv}, nil
}

// withText applies an exact-text filter to each candidate.
func withText(candidates []browser.Candidate, text string) []browser.Candidate {
	out := make([]browser.Candidate, len(candidates))
	for i, c := range candidates {
		c.Text = text
		out[i] = c
	}
	return out
}
