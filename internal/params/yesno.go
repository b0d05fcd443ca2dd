package params

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
)

// YesNo drives YES_NO parameters: two buttons whose selected state is read
// back from the class list rather than a form value.
type YesNo struct {
	base
}

// NewYesNo creates the YES_NO handler.
func NewYesNo(session *browser.Session, timeout time.Duration) *YesNo {
	return &YesNo{base: newBase(session, timeout)}
}

var _ Field = (*YesNo)(nil)

func optionCandidates(option string) []browser.Candidate {
	return []browser.Candidate{
		{Selector: "button", Description: "button with text " + option, Text: option, MinY: 100},
		{Selector: "button.filled", Description: "filled button " + option, Text: option},
	}
}

// Fill selects "Yes" or "No".
func (y *YesNo) Fill(ctx context.Context, label, value string) error {
	option, err := normalizeYesNo(value)
	if err != nil {
		return browser.NewFlowError("yes/no selection", "parse", err)
	}
	sel, err := y.resolver.ResolveWithin(ctx, option+" option for "+label, optionCandidates(option), y.timeout)
	if err != nil {
		return browser.NewFlowError("yes/no selection", "locate", err)
	}
	if !y.session.Click(ctx, sel, y.timeout) {
		return browser.NewFlowError("yes/no selection", "click", fmt.Errorf("%s option did not accept a click", option))
	}
	return nil
}

// Verify reports whether the expected option is currently selected.
func (y *YesNo) Verify(ctx context.Context, label, expected string) bool {
	option, err := normalizeYesNo(expected)
	if err != nil {
		return false
	}
	return y.Selected(ctx, label) == option
}

// Enabled reports whether the Yes option accepts interaction.
func (y *YesNo) Enabled(ctx context.Context, label string) bool {
	sel, err := y.resolver.Resolve(ctx, "Yes option for "+label, optionCandidates("Yes"))
	if err != nil {
		return false
	}
	disabled, ok := y.session.Attribute(ctx, sel, "disabled")
	return !ok || disabled == "false"
}

// Selected returns "Yes", "No" or "Unknown" from the buttons' class state.
func (y *YesNo) Selected(ctx context.Context, label string) string {
	for _, option := range []string{"Yes", "No"} {
		sel, err := y.resolver.Resolve(ctx, option+" option for "+label, optionCandidates(option))
		if err != nil {
			continue
		}
		class, _ := y.session.Attribute(ctx, sel, "class")
		if IsOptionSelected(class) {
			return option
		}
	}
	return "Unknown"
}

// IsOptionSelected decides selection state from a button's class list.
func IsOptionSelected(class string) bool {
	return strings.Contains(class, "active") || strings.Contains(class, "selected")
}

func normalizeYesNo(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true":
		return "Yes", nil
	case "no", "n", "false":
		return "No", nil
	}
	return "", fmt.Errorf("not a yes/no value: %q", value)
}
