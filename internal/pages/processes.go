package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
)

// ProcessListPage lists the published processes for the selected use case.
type ProcessListPage struct {
	drv *Driver
}

// SearchProcess filters the list by name.
func (p *ProcessListPage) SearchProcess(ctx context.Context, name string) error {
	searchCandidates := []browser.Candidate{
		{Selector: "input[placeholder*='Search']", Description: "process search box", MinY: 100},
		{Selector: "input[type='search']", Description: "native search input"},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "process search", searchCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError("process search", "locate", err)
	}
	if !p.drv.Session.Fill(ctx, sel, name, p.drv.Timeout) {
		return browser.NewFlowError("process search", "fill", fmt.Errorf("search box did not accept input"))
	}
	return nil
}

// OpenProcess clicks the named process row and moves to job creation.
func (p *ProcessListPage) OpenProcess(ctx context.Context, name string) (*JobCreationPage, error) {
	const flow = "process selection"

	rowCandidates := []browser.Candidate{
		{Selector: "table tbody tr a", Description: "process link in table", Text: name},
		{Selector: "a", Description: "process link anywhere", Text: name, MinY: 100},
	}
	row, err := p.drv.Resolver.ResolveWithin(ctx, "process "+name, rowCandidates, p.drv.Timeout)
	if err != nil {
		return nil, browser.NewFlowError(flow, "row", err)
	}
	if !p.drv.Session.Click(ctx, row, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "row", fmt.Errorf("process row did not accept a click"))
	}

	return &JobCreationPage{drv: p.drv, processName: name}, nil
}
