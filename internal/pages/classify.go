package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/dwitest/internal/models"
)

// The platform exposes no schema for object instances, so each rendered
// field's type has to be inferred from its DOM shape. The decision table is
// closed: select-widget markup wins (multi-value variant decides multi vs
// single select), then a textarea means multi-line text, then a plain input
// means single-line text, and anything else is Unknown — an explicit,
// observable outcome the caller skips and logs.

const (
	selectWidgetMarkers = "[class*='custom-select'], [class*='select__control'], [class*='select-widget']"
	multiValueMarkers   = "[class*='multi-value'], [class*='select__multi'], [class*='--is-multi']"
)

// ClassifyField infers a field kind from one field container's HTML.
func ClassifyField(html string) models.FieldKind {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.FieldUnknown
	}
	return classifySelection(doc.Selection)
}

func classifySelection(sel *goquery.Selection) models.FieldKind {
	hasSelect := sel.Find(selectWidgetMarkers).Length() > 0
	hasMulti := sel.Find(multiValueMarkers).Length() > 0
	hasTextarea := sel.Find("textarea").Length() > 0
	hasInput := sel.Find("input").Length() > 0

	switch {
	case hasSelect && hasMulti:
		return models.FieldMultiSelect
	case hasSelect:
		return models.FieldSingleSelect
	case hasTextarea:
		return models.FieldMultiLineText
	case hasInput:
		return models.FieldSingleLineText
	default:
		return models.FieldUnknown
	}
}

// InstanceField is one classified field of an object-instance form.
type InstanceField struct {
	Label string
	Kind  models.FieldKind
}

// ClassifyInstanceForm walks an instance form's HTML and classifies every
// labelled field container, in render order.
func ClassifyInstanceForm(html string) []InstanceField {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var fields []InstanceField
	doc.Find("label").Each(func(_ int, label *goquery.Selection) {
		text := strings.TrimSpace(label.Text())
		if text == "" {
			return
		}
		container := label.Parent()
		// Walk up until the container holds an interactive element, so the
		// classification sees the widget and not just the label. The climb
		// stops before an ancestor shared with other labels: a field with no
		// widget of its own must classify as Unknown, not from a sibling.
		for depth := 0; depth < 3; depth++ {
			if container.Find("input, textarea, select").Length() > 0 ||
				container.Find(selectWidgetMarkers).Length() > 0 {
				break
			}
			parent := container.Parent()
			if parent.Length() == 0 || parent.Find("label").Length() > 1 {
				break
			}
			container = parent
		}
		fields = append(fields, InstanceField{Label: text, Kind: classifySelection(container)})
	})
	return fields
}
