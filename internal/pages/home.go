package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
)

// HomePage shows the use-case cards and the sidebar entry points.
type HomePage struct {
	drv *Driver
}

// SelectUseCase clicks the named use-case card and lands on the process
// list.
func (p *HomePage) SelectUseCase(ctx context.Context, useCase string) (*ProcessListPage, error) {
	const flow = "use case selection"

	cardCandidates := []browser.Candidate{
		{Selector: ".use-case-card-body", Description: "use case card body", Text: useCase},
		{Selector: "[class*='use-case'] [class*='card']", Description: "use case card by class", Text: useCase},
	}
	card, err := p.drv.Resolver.ResolveWithin(ctx, "use case card "+useCase, cardCandidates, p.drv.Timeout)
	if err != nil {
		return nil, browser.NewFlowError(flow, "card", err)
	}
	if !p.drv.Session.Click(ctx, card, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "card", fmt.Errorf("use case card did not accept a click"))
	}

	if !p.drv.Session.WaitForURLContains(ctx, "/processes", p.drv.Timeout) &&
		!p.drv.Session.WaitForURLContains(ctx, "/checklists", p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "process list", fmt.Errorf("process list never loaded"))
	}

	p.drv.log.Info().Str("use_case", useCase).Msg("Use case selected")
	return &ProcessListPage{drv: p.drv}, nil
}

// OpenSidebar reveals the navigation sidebar.
func (p *HomePage) OpenSidebar(ctx context.Context) (*Sidebar, error) {
	toggleCandidates := []browser.Candidate{
		{Selector: "[class*='sidebar-toggle']", Description: "sidebar toggle by class"},
		{Selector: "[aria-label*='menu']", Description: "menu control by aria label"},
		{Selector: "header button", Description: "first header button"},
	}
	toggle, err := p.drv.Resolver.ResolveWithin(ctx, "sidebar toggle", toggleCandidates, p.drv.Timeout)
	if err != nil {
		return nil, browser.NewFlowError("sidebar", "toggle", err)
	}
	if !p.drv.Session.Click(ctx, toggle, p.drv.Timeout) {
		return nil, browser.NewFlowError("sidebar", "toggle", fmt.Errorf("sidebar toggle did not accept a click"))
	}
	return &Sidebar{drv: p.drv}, nil
}
