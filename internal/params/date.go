package params

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/dwitest/internal/browser"
)

// dateLayouts are tried in a fixed priority order; the first successful
// parse wins. Ambiguous inputs like 05/12/2025 therefore read as
// day-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

// ParseDateInput parses a user-supplied date string against the supported
// layouts in priority order.
func ParseDateInput(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", value)
}

// DayCellLabel returns the calendar cell text for a date: the day of month
// with any leading zero stripped.
func DayCellLabel(t time.Time) string {
	return strconv.Itoa(t.Day())
}

// Date drives DATE parameters: direct text entry, or the calendar picker
// with a named "today" shortcut.
type Date struct {
	base
}

// NewDate creates the DATE handler.
func NewDate(session *browser.Session, timeout time.Duration) *Date {
	return &Date{base: newBase(session, timeout)}
}

var _ Field = (*Date)(nil)

func (d *Date) inputCandidates() []browser.Candidate {
	return append(typedInputCandidates("DATE"), browser.Candidate{
		Selector:    "input[type='date']",
		Description: "native date input",
	})
}

// Fill types the date directly into the field in its expected format.
func (d *Date) Fill(ctx context.Context, label, value string) error {
	parsed, err := ParseDateInput(value)
	if err != nil {
		return browser.NewFlowError("date entry", "parse", err)
	}

	sel, err := d.resolver.ResolveWithin(ctx, "date input for "+label, d.inputCandidates(), d.timeout)
	if err != nil {
		return browser.NewFlowError("date entry", "locate", err)
	}

	if !d.session.Fill(ctx, sel, parsed.Format("2006-01-02"), d.timeout) {
		return browser.NewFlowError("date entry", "fill", fmt.Errorf("could not fill date field for %q", label))
	}
	return nil
}

// Verify reads the field back and compares against the expected value in
// any supported format.
func (d *Date) Verify(ctx context.Context, label, expected string) bool {
	want, err := ParseDateInput(expected)
	if err != nil {
		return false
	}
	sel, err := d.resolver.Resolve(ctx, "date input for "+label, d.inputCandidates())
	if err != nil {
		return false
	}
	got, err := ParseDateInput(d.session.InputValue(ctx, sel))
	if err != nil {
		return false
	}
	return got.Equal(want)
}

// Enabled reports whether the date input accepts interaction.
func (d *Date) Enabled(ctx context.Context, label string) bool {
	sel, err := d.resolver.Resolve(ctx, "date input for "+label, d.inputCandidates())
	if err != nil {
		return false
	}
	disabled, ok := d.session.Attribute(ctx, sel, "disabled")
	return !ok || disabled == "false"
}

// PickFromCalendar opens the calendar picker and clicks the day cell for
// the given date string. The cell label is the day of month with its
// leading zero stripped.
func (d *Date) PickFromCalendar(ctx context.Context, label, value string) error {
	parsed, err := ParseDateInput(value)
	if err != nil {
		return browser.NewFlowError("calendar pick", "parse", err)
	}

	if err := d.openPicker(ctx, label); err != nil {
		return err
	}

	day := DayCellLabel(parsed)
	cellCandidates := []browser.Candidate{
		{
			Selector:    ".react-datepicker__day:not(.react-datepicker__day--outside-month)",
			Description: "datepicker day cells",
		},
		{
			Selector:    "[class*='calendar'] [class*='day']",
			Description: "generic calendar day cells",
		},
	}
	// Resolve narrows to the cell whose text equals the day label.
	sel, err := d.resolver.ResolveWithin(ctx, "day cell "+day, withTextFilter(cellCandidates, day), d.timeout)
	if err != nil {
		return browser.NewFlowError("calendar pick", "day cell", err)
	}
	if !d.session.Click(ctx, sel, d.timeout) {
		return browser.NewFlowError("calendar pick", "day cell", fmt.Errorf("day cell %q did not accept a click", day))
	}
	return nil
}

// PickToday uses the picker's Today shortcut.
func (d *Date) PickToday(ctx context.Context, label string) error {
	if err := d.openPicker(ctx, label); err != nil {
		return err
	}
	if !d.session.ClickButtonByText(ctx, "Today", d.timeout) {
		return browser.NewFlowError("calendar pick", "today shortcut", fmt.Errorf("Today control not found"))
	}
	return nil
}

func (d *Date) openPicker(ctx context.Context, label string) error {
	sel, err := d.resolver.ResolveWithin(ctx, "date input for "+label, d.inputCandidates(), d.timeout)
	if err != nil {
		return browser.NewFlowError("calendar pick", "locate", err)
	}
	if !d.session.Click(ctx, sel, d.timeout) {
		return browser.NewFlowError("calendar pick", "open picker", fmt.Errorf("date field for %q did not open a picker", label))
	}
	return nil
}
