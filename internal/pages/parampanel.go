package pages

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/dwitest/internal/browser"
)

// ParameterPanel is the form area of the selected task.
type ParameterPanel struct {
	drv *Driver
}

// Labels lists the parameter labels rendered in the current task, parsed
// from the panel HTML in render order.
func (p *ParameterPanel) Labels(ctx context.Context) []string {
	panelCandidates := []browser.Candidate{
		{Selector: "#task-wrapper .parameter-list", Description: "parameter list in task wrapper"},
		{Selector: "[class*='parameter-list']", Description: "parameter list by class"},
		{Selector: "#task-wrapper", Description: "task wrapper"},
	}
	sel, err := p.drv.Resolver.Resolve(ctx, "parameter panel", panelCandidates)
	if err != nil {
		return nil
	}
	html := p.drv.Session.OuterHTML(ctx, sel)
	if html == "" {
		return nil
	}
	return ExtractParameterLabels(html)
}

// ExtractParameterLabels parses the visible parameter labels from panel
// HTML.
func ExtractParameterLabels(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var labels []string
	doc.Find("label, [class*='parameter-label']").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		for _, seen := range labels {
			if seen == text {
				return
			}
		}
		labels = append(labels, text)
	})
	return labels
}

// ScrollToLabel brings a parameter into view before its handler interacts
// with it.
func (p *ParameterPanel) ScrollToLabel(ctx context.Context, label string) bool {
	labelCandidates := withText([]browser.Candidate{
		{Selector: "label", Description: "parameter label"},
		{Selector: "[class*='parameter-label']", Description: "parameter label by class"},
	}, label)
	sel, err := p.drv.Resolver.Resolve(ctx, "label "+label, labelCandidates)
	if err != nil {
		return false
	}
	return p.drv.Session.Click(ctx, sel, p.drv.Timeout)
}
