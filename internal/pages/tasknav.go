package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/dwitest/internal/browser"
)

// TaskNavigationPanel is the stage/task tree on the left of the job
// execution view.
type TaskNavigationPanel struct {
	drv *Driver
}

// TaskNames lists the task labels in render order, parsed from the panel's
// HTML.
func (p *TaskNavigationPanel) TaskNames(ctx context.Context) []string {
	panelCandidates := []browser.Candidate{
		{Selector: "[class*='task-list']", Description: "task list by class"},
		{Selector: "[class*='stage'] nav", Description: "stage navigation"},
		{Selector: "aside", Description: "side panel"},
	}
	sel, err := p.drv.Resolver.Resolve(ctx, "task panel", panelCandidates)
	if err != nil {
		return nil
	}
	html := p.drv.Session.OuterHTML(ctx, sel)
	if html == "" {
		return nil
	}
	return ExtractTaskNames(html)
}

// ExtractTaskNames parses task labels from the panel HTML.
func ExtractTaskNames(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var names []string
	doc.Find("[class*='task-name'], [class*='task'] span, li").Each(func(_ int, sel *goquery.Selection) {
		// Leaf nodes only, otherwise nested wrappers duplicate entries.
		if sel.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		for _, seen := range names {
			if seen == text {
				return
			}
		}
		names = append(names, text)
	})
	return names
}

// SelectTask clicks the named task in the panel.
func (p *TaskNavigationPanel) SelectTask(ctx context.Context, name string) error {
	const flow = "task selection"

	taskCandidates := withText([]browser.Candidate{
		{Selector: "[class*='task-name']", Description: "task entry by class"},
		{Selector: "[class*='task-list'] li", Description: "task list item"},
		{Selector: "span", Description: "task entry by text", MinY: 100},
	}, name)
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "task "+name, taskCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, "locate", err)
	}
	if !p.drv.Session.Click(ctx, sel, p.drv.Timeout) {
		return browser.NewFlowError(flow, "click", fmt.Errorf("task %q did not accept a click", name))
	}

	if !p.drv.Session.WaitVisible(ctx, "#task-wrapper", p.drv.Timeout) {
		return browser.NewFlowError(flow, "render", fmt.Errorf("task view for %q never rendered", name))
	}
	return nil
}
