package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
)

// Sidebar is the navigation rail reached from the home page.
type Sidebar struct {
	drv *Driver
}

// NavigateToOntology opens the ontology section.
func (p *Sidebar) NavigateToOntology(ctx context.Context) (*OntologyPage, error) {
	const flow = "sidebar navigation"

	linkCandidates := []browser.Candidate{
		{Selector: "a[href*='ontology']", Description: "ontology link by href"},
		{Selector: "nav a", Description: "nav link with text", Text: "Ontology"},
		{Selector: "[class*='sidebar'] a", Description: "sidebar link with text", Text: "Ontology"},
	}
	link, err := p.drv.Resolver.ResolveWithin(ctx, "ontology link", linkCandidates, p.drv.Timeout)
	if err != nil {
		return nil, browser.NewFlowError(flow, "ontology link", err)
	}
	if !p.drv.Session.Click(ctx, link, p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "ontology link", fmt.Errorf("ontology link did not accept a click"))
	}

	if !p.drv.Session.WaitForURLContains(ctx, "ontology", p.drv.Timeout) {
		return nil, browser.NewFlowError(flow, "ontology page", fmt.Errorf("ontology page never loaded"))
	}

	return &OntologyPage{drv: p.drv}, nil
}
