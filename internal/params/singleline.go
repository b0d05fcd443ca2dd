package params

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
)

// SingleLine drives SINGLE_LINE text parameters.
type SingleLine struct {
	base
}

// NewSingleLine creates the SINGLE_LINE handler.
func NewSingleLine(session *browser.Session, timeout time.Duration) *SingleLine {
	return &SingleLine{base: newBase(session, timeout)}
}

var _ Field = (*SingleLine)(nil)

func (s *SingleLine) inputCandidates() []browser.Candidate {
	return typedInputCandidates("SINGLE_LINE")
}

// Fill types the text and blurs to persist.
func (s *SingleLine) Fill(ctx context.Context, label, value string) error {
	sel, err := s.resolver.ResolveWithin(ctx, "text input for "+label, s.inputCandidates(), s.timeout)
	if err != nil {
		return browser.NewFlowError("text entry", "locate", err)
	}
	if !s.session.Fill(ctx, sel, value, s.timeout) {
		return browser.NewFlowError("text entry", "fill", fmt.Errorf("could not fill text field for %q", label))
	}
	return nil
}

// Verify reads the field back and compares exactly.
func (s *SingleLine) Verify(ctx context.Context, label, expected string) bool {
	sel, err := s.resolver.Resolve(ctx, "text input for "+label, s.inputCandidates())
	if err != nil {
		return false
	}
	return s.session.InputValue(ctx, sel) == expected
}

// Enabled reports whether the text input accepts interaction.
func (s *SingleLine) Enabled(ctx context.Context, label string) bool {
	sel, err := s.resolver.Resolve(ctx, "text input for "+label, s.inputCandidates())
	if err != nil {
		return false
	}
	disabled, ok := s.session.Attribute(ctx, sel, "disabled")
	return !ok || disabled == "false"
}

// MaxLength returns the field's maxlength constraint, -1 when none is set.
func (s *SingleLine) MaxLength(ctx context.Context, label string) int {
	sel, err := s.resolver.Resolve(ctx, "text input for "+label, s.inputCandidates())
	if err != nil {
		return -1
	}
	raw, ok := s.session.Attribute(ctx, sel, "maxlength")
	if !ok {
		return -1
	}
	max, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return max
}

// CharacterCount returns the current value length, 0 when unreadable.
func (s *SingleLine) CharacterCount(ctx context.Context, label string) int {
	sel, err := s.resolver.Resolve(ctx, "text input for "+label, s.inputCandidates())
	if err != nil {
		return 0
	}
	return len(s.session.InputValue(ctx, sel))
}
