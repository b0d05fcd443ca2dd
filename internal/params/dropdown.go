package params

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
)

// Resource and SingleSelect share the same searchable-dropdown mechanics;
// they differ only in which of the page's custom-select inputs they target.
// The page renders several visually identical dropdowns (including one in
// the navigation header), so the candidate chains use the vertical-position
// filter: header controls sit above ~100px, content controls below. This is
// a heuristic inherited from the target application, which exposes no
// stable structural attribute for these widgets.

// dropdown is the shared implementation.
type dropdown struct {
	base
	kind       string
	candidates []browser.Candidate
}

// openAndSelect opens the dropdown, optionally types a filter, then clicks
// either the named option or the first one listed.
func (d *dropdown) openAndSelect(ctx context.Context, label, filter, option string) error {
	trigger, err := d.resolver.ResolveWithin(ctx, d.kind+" dropdown for "+label, d.candidates, d.timeout)
	if err != nil {
		return browser.NewFlowError(d.kind+" selection", "locate dropdown", err)
	}
	if !d.session.Click(ctx, trigger, d.timeout) {
		return browser.NewFlowError(d.kind+" selection", "open dropdown", fmt.Errorf("dropdown for %q did not open", label))
	}

	if filter != "" {
		if !d.session.Fill(ctx, trigger, filter, d.timeout) {
			return browser.NewFlowError(d.kind+" selection", "filter", fmt.Errorf("dropdown for %q did not accept filter text", label))
		}
	}

	optionCandidates := []browser.Candidate{
		{Selector: ".custom-select__menu [role='option']", Description: "menu option by role"},
		{Selector: "[class*='custom-select__option']", Description: "menu option by class"},
		{Selector: "[role='option']", Description: "any option role"},
	}
	if option != "" {
		optionCandidates = withTextFilter(optionCandidates, option)
	}

	sel, err := d.resolver.ResolveWithin(ctx, "option for "+label, optionCandidates, d.timeout)
	if err != nil {
		if option != "" {
			// Named option absent: fall back to the first available one.
			sel, err = d.resolver.ResolveWithin(ctx, "first option for "+label, withTextFilter(optionCandidates, ""), d.timeout)
		}
		if err != nil {
			return browser.NewFlowError(d.kind+" selection", "select option", err)
		}
	}
	if !d.session.Click(ctx, sel, d.timeout) {
		return browser.NewFlowError(d.kind+" selection", "select option", fmt.Errorf("option did not accept a click"))
	}
	return nil
}

// verifySelected checks the rendered single-value text against expected.
func (d *dropdown) verifySelected(ctx context.Context, label, expected string) bool {
	valueCandidates := []browser.Candidate{
		{Selector: "[class*='single-value']", Description: "selected value", MinY: 100},
		{Selector: "[class*='custom-select__value']", Description: "select value container", MinY: 100},
	}
	sel, err := d.resolver.Resolve(ctx, "selected value for "+label, valueCandidates)
	if err != nil {
		return false
	}
	text := d.session.GetText(ctx, sel)
	return text != "" && containsFold(text, expected)
}

func (d *dropdown) enabled(ctx context.Context, label string) bool {
	trigger, err := d.resolver.Resolve(ctx, d.kind+" dropdown for "+label, d.candidates)
	if err != nil {
		return false
	}
	disabled, ok := d.session.Attribute(ctx, trigger, "disabled")
	return !ok || disabled == "false"
}

// Close dismisses an open dropdown menu.
func (d *dropdown) Close(ctx context.Context) {
	d.session.PressEscape(ctx)
}

// Resource drives RESOURCE (equipment) dropdowns inside the task area.
type Resource struct {
	dropdown
}

// NewResource creates the RESOURCE handler.
func NewResource(session *browser.Session, timeout time.Duration) *Resource {
	return &Resource{dropdown: dropdown{
		base: newBase(session, timeout),
		kind: "resource",
		candidates: []browser.Candidate{
			{
				Selector:    "#task-wrapper .parameter-list input.custom-select__input",
				Description: "task-wrapper parameter list",
			},
			{
				Selector:    ".react-custom-select input.custom-select__input",
				Description: "react-custom-select component",
			},
			{
				Selector:    "#task-wrapper .task-body input.custom-select__input",
				Description: "task-wrapper task body",
			},
			{
				Selector:    "input.custom-select__input",
				Description: "dropdown below header by position",
				MinY:        200,
			},
		},
	}}
}

var _ Field = (*Resource)(nil)

// Fill selects the named resource, or the first available when the name is
// empty or absent.
func (r *Resource) Fill(ctx context.Context, label, value string) error {
	return r.openAndSelect(ctx, label, value, value)
}

// SelectFirst picks the first option without filtering.
func (r *Resource) SelectFirst(ctx context.Context, label string) error {
	return r.openAndSelect(ctx, label, "", "")
}

// Verify checks the selected resource name.
func (r *Resource) Verify(ctx context.Context, label, expected string) bool {
	return r.verifySelected(ctx, label, expected)
}

// Enabled reports whether the dropdown accepts interaction.
func (r *Resource) Enabled(ctx context.Context, label string) bool {
	return r.enabled(ctx, label)
}

// SingleSelect drives SINGLE_SELECT dropdowns. Among content-area
// dropdowns the single-select is the second one (the first is the
// resource), hence the Nth filter on the positional candidate.
type SingleSelect struct {
	dropdown
}

// NewSingleSelect creates the SINGLE_SELECT handler.
func NewSingleSelect(session *browser.Session, timeout time.Duration) *SingleSelect {
	return &SingleSelect{dropdown: dropdown{
		base: newBase(session, timeout),
		kind: "single-select",
		candidates: []browser.Candidate{
			{
				Selector:    "div.custom-select__placeholder",
				Description: "placeholder 'You can select one option here'",
				Text:        "You can select one option here",
			},
			{
				Selector:    "input.custom-select__input",
				Description: "second content-area dropdown by position",
				MinY:        100,
				Nth:         1,
			},
			{
				Selector:    "input.custom-select__input",
				Description: "only content-area dropdown by position",
				MinY:        100,
			},
		},
	}}
}

var _ Field = (*SingleSelect)(nil)

// Fill selects the named option from the dropdown.
func (s *SingleSelect) Fill(ctx context.Context, label, value string) error {
	return s.openAndSelect(ctx, label, "", value)
}

// SelectFirst picks the first option without filtering.
func (s *SingleSelect) SelectFirst(ctx context.Context, label string) error {
	return s.openAndSelect(ctx, label, "", "")
}

// Verify checks the selected option text.
func (s *SingleSelect) Verify(ctx context.Context, label, expected string) bool {
	return s.verifySelected(ctx, label, expected)
}

// Enabled reports whether the dropdown accepts interaction.
func (s *SingleSelect) Enabled(ctx context.Context, label string) bool {
	return s.enabled(ctx, label)
}
