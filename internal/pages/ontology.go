package pages

import (
	"context"
	"fmt"

	"github.com/ternarybob/dwitest/internal/browser"
	"github.com/ternarybob/dwitest/internal/models"
)

// OntologyPage drives the object-type / property / relation authoring
// screens and object-instance creation.
type OntologyPage struct {
	drv *Driver
}

// writeHereInput addresses the creation form's unlabeled inputs by index:
// 0 display name, 1 plural name, 2 title property name, 3 title property
// description, 4 identifier property name, 5 identifier property
// description.
func writeHereInput(nth int) []browser.Candidate {
	return []browser.Candidate{
		{
			Selector:    "input[placeholder='Write here']",
			Description: fmt.Sprintf("write-here input %d", nth),
			Nth:         nth,
		},
	}
}

func (p *OntologyPage) fillWriteHere(ctx context.Context, flow, step string, nth int, value string) error {
	if value == "" {
		return nil
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, step, writeHereInput(nth), p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, step, err)
	}
	if !p.drv.Session.Fill(ctx, sel, value, p.drv.Timeout) {
		return browser.NewFlowError(flow, step, fmt.Errorf("input did not accept %q", value))
	}
	return nil
}

// CreateObjectType authors a new object type with its title and identifier
// properties.
func (p *OntologyPage) CreateObjectType(ctx context.Context, ot models.ObjectType) error {
	const flow = "object type creation"

	if !p.drv.Session.ClickButtonByText(ctx, "Add New Object Type", p.drv.Timeout) {
		return browser.NewFlowError(flow, "add button", fmt.Errorf("Add New Object Type control not found"))
	}

	if err := p.fillWriteHere(ctx, flow, "display name", 0, ot.DisplayName); err != nil {
		return err
	}
	if err := p.fillWriteHere(ctx, flow, "plural name", 1, ot.PluralName); err != nil {
		return err
	}

	if ot.Description != "" {
		descCandidates := []browser.Candidate{
			{Selector: "textarea[placeholder='Write here']", Description: "description textarea"},
			{Selector: "textarea", Description: "first textarea"},
		}
		if sel, err := p.drv.Resolver.Resolve(ctx, "description", descCandidates); err == nil {
			p.drv.Session.Fill(ctx, sel, ot.Description, p.drv.Timeout)
		}
	}

	if err := p.fillWriteHere(ctx, flow, "title property name", 2, ot.TitleProperty); err != nil {
		return err
	}
	if err := p.fillWriteHere(ctx, flow, "title property description", 3, ot.TitleDescription); err != nil {
		return err
	}

	// The identifier section may default to auto-generated; untoggling it
	// reveals the identifier inputs.
	p.untoggleAutoGenerated(ctx)

	if err := p.fillWriteHere(ctx, flow, "identifier property name", 4, ot.IdentifierProperty); err != nil {
		return err
	}
	if err := p.fillWriteHere(ctx, flow, "identifier property description", 5, ot.IdentifierDescription); err != nil {
		return err
	}

	p.fillReason(ctx, "Automated object type creation")

	if err := p.submit(ctx); err != nil {
		return browser.NewFlowError(flow, "submit", err)
	}

	p.drv.log.Info().Str("object_type", ot.DisplayName).Msg("Object type created")
	return nil
}

func (p *OntologyPage) untoggleAutoGenerated(ctx context.Context) {
	toggleCandidates := []browser.Candidate{
		{Selector: "input[type='checkbox'][id*='auto']", Description: "auto-generated toggle by id"},
		{Selector: "input[type='checkbox'][id*='generate']", Description: "generate toggle by id"},
	}
	sel, err := p.drv.Resolver.Resolve(ctx, "auto-generated toggle", toggleCandidates)
	if err != nil {
		return
	}
	if checked, ok := p.drv.Session.Attribute(ctx, sel, "checked"); ok && checked != "false" {
		p.drv.Session.Click(ctx, sel, p.drv.Timeout)
	}
}

func (p *OntologyPage) fillReason(ctx context.Context, reason string) {
	reasonCandidates := []browser.Candidate{
		{Selector: "textarea[placeholder*='comments']", Description: "reason textarea by comments placeholder"},
		{Selector: "textarea[placeholder*='reason']", Description: "reason textarea by reason placeholder"},
		{Selector: "textarea[placeholder*='Users will write']", Description: "reason textarea by hint placeholder"},
	}
	sel, err := p.drv.Resolver.Resolve(ctx, "reason field", reasonCandidates)
	if err != nil {
		return
	}
	p.drv.Session.Fill(ctx, sel, reason, p.drv.Timeout)
}

func (p *OntologyPage) submit(ctx context.Context) error {
	for _, label := range []string{"Create", "Save", "Submit"} {
		if p.drv.Session.ClickButtonByText(ctx, label, p.drv.Timeout/4) {
			return nil
		}
	}
	return fmt.Errorf("no submit control found")
}

// SearchObjectType filters the object-type list by name.
func (p *OntologyPage) SearchObjectType(ctx context.Context, name string) error {
	searchCandidates := []browser.Candidate{
		{Selector: "input[placeholder='Search with Object Type']", Description: "object type search by placeholder"},
		{Selector: "input[placeholder*='Search']", Description: "generic search box", MinY: 100},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "object type search", searchCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError("object type search", "locate", err)
	}
	if !p.drv.Session.Fill(ctx, sel, name, p.drv.Timeout) {
		return browser.NewFlowError("object type search", "fill", fmt.Errorf("search box did not accept input"))
	}
	return nil
}

// OpenObjectType clicks the named object type in the filtered list.
func (p *OntologyPage) OpenObjectType(ctx context.Context, name string) error {
	const flow = "object type open"

	linkCandidates := withText([]browser.Candidate{
		{Selector: "a", Description: "object type link"},
		{Selector: "table tbody tr a", Description: "object type link in table"},
	}, name)
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "object type "+name, linkCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, "link", err)
	}
	if !p.drv.Session.Click(ctx, sel, p.drv.Timeout) {
		return browser.NewFlowError(flow, "link", fmt.Errorf("object type %q did not accept a click", name))
	}
	return nil
}

func (p *OntologyPage) openTab(ctx context.Context, name string) error {
	tabCandidates := withText([]browser.Candidate{
		{Selector: "div.tab-header-item span", Description: "tab header span"},
		{Selector: "[role='tab']", Description: "tab by role"},
	}, name)
	sel, err := p.drv.Resolver.ResolveWithin(ctx, name+" tab", tabCandidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Click(ctx, sel, p.drv.Timeout) {
		return fmt.Errorf("%s tab did not accept a click", name)
	}
	return nil
}

// CreateProperty adds a typed property to the open object type.
func (p *OntologyPage) CreateProperty(ctx context.Context, prop models.Property) error {
	const flow = "property creation"

	if err := p.openTab(ctx, "Properties"); err != nil {
		return browser.NewFlowError(flow, "properties tab", err)
	}
	if !p.drv.Session.ClickButtonByText(ctx, "Create New Property", p.drv.Timeout) {
		return browser.NewFlowError(flow, "create button", fmt.Errorf("Create New Property control not found"))
	}

	if err := p.fillWriteHere(ctx, flow, "label", 0, prop.Label); err != nil {
		return err
	}
	if prop.Description != "" {
		descCandidates := []browser.Candidate{
			{Selector: "input[placeholder='Write Here']", Description: "description input"},
			{Selector: "input[placeholder='Write here']", Description: "second write-here input", Nth: 1},
		}
		if sel, err := p.drv.Resolver.Resolve(ctx, "property description", descCandidates); err == nil {
			p.drv.Session.Fill(ctx, sel, prop.Description, p.drv.Timeout)
		}
	}

	if !p.drv.Session.ClickButtonByText(ctx, "Next", p.drv.Timeout) {
		return browser.NewFlowError(flow, "next", fmt.Errorf("Next control not found"))
	}

	if err := p.selectPropertyType(ctx, prop.Type); err != nil {
		return browser.NewFlowError(flow, "type selection", err)
	}

	for _, option := range prop.Options {
		if err := p.addDropdownOption(ctx, option); err != nil {
			return browser.NewFlowError(flow, "options", err)
		}
	}

	reason := prop.Reason
	if reason == "" {
		reason = "Automated property creation"
	}
	p.fillReason(ctx, reason)

	if !p.drv.Session.ClickButtonByText(ctx, "Create Property", p.drv.Timeout) {
		if err := p.submit(ctx); err != nil {
			return browser.NewFlowError(flow, "submit", err)
		}
	}

	p.drv.log.Info().Str("property", prop.Label).Str("type", string(prop.Type)).Msg("Property created")
	return nil
}

func (p *OntologyPage) selectPropertyType(ctx context.Context, paramType models.ParameterType) error {
	typeCandidates := withText([]browser.Candidate{
		{Selector: "[role='option']", Description: "type option by role"},
		{Selector: "[class*='option']", Description: "type option by class"},
		{Selector: "li", Description: "type option as list item"},
	}, typeDisplayName(paramType))
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "type option "+string(paramType), typeCandidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Click(ctx, sel, p.drv.Timeout) {
		return fmt.Errorf("type option %q did not accept a click", paramType)
	}
	return nil
}

// typeDisplayName maps a parameter type tag to its label in the type
// picker.
func typeDisplayName(paramType models.ParameterType) string {
	switch paramType {
	case models.ParameterSingleLine:
		return "Single-line text"
	case models.ParameterMultiLine:
		return "Multi-line text"
	case models.ParameterNumber:
		return "Number"
	case models.ParameterDate:
		return "Date"
	case models.ParameterDateTime:
		return "Date-Time"
	case models.ParameterSingleSelect:
		return "Single-select dropdown"
	case models.ParameterMultiSelect:
		return "Multi-select dropdown"
	case models.ParameterYesNo:
		return "Yes/No"
	default:
		return string(paramType)
	}
}

func (p *OntologyPage) addDropdownOption(ctx context.Context, option string) error {
	if !p.drv.Session.ClickButtonByText(ctx, "Add Option", p.drv.Timeout/4) {
		p.drv.log.Debug().Msg("No Add Option control, filling existing option input")
	}
	optionCandidates := []browser.Candidate{
		{Selector: "input[placeholder*='option']", Description: "option input by placeholder"},
		{Selector: "[class*='option-list'] input", Description: "option list input"},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "option input", optionCandidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Fill(ctx, sel, option, p.drv.Timeout) {
		return fmt.Errorf("option input did not accept %q", option)
	}
	return nil
}

// CreateRelation links the open object type to another.
func (p *OntologyPage) CreateRelation(ctx context.Context, rel models.Relation) error {
	const flow = "relation creation"

	if err := p.openTab(ctx, "Relations"); err != nil {
		return browser.NewFlowError(flow, "relations tab", err)
	}
	if !p.drv.Session.ClickButtonByText(ctx, "Create New Relation", p.drv.Timeout) {
		return browser.NewFlowError(flow, "create button", fmt.Errorf("Create New Relation control not found"))
	}

	if err := p.fillWriteHere(ctx, flow, "relation name", 0, rel.Name); err != nil {
		return err
	}

	// Target object type is a searchable dropdown.
	targetCandidates := []browser.Candidate{
		{Selector: "input.custom-select__input", Description: "target type dropdown", MinY: 100},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "target object type", targetCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, "target type", err)
	}
	if !p.drv.Session.Fill(ctx, sel, rel.TargetType, p.drv.Timeout) {
		return browser.NewFlowError(flow, "target type", fmt.Errorf("target type dropdown did not accept input"))
	}
	optionCandidates := withText([]browser.Candidate{
		{Selector: "[role='option']", Description: "target option by role"},
		{Selector: "[class*='option']", Description: "target option by class"},
	}, rel.TargetType)
	if opt, err := p.drv.Resolver.ResolveWithin(ctx, "target option", optionCandidates, p.drv.Timeout); err == nil {
		p.drv.Session.Click(ctx, opt, p.drv.Timeout)
	}

	if !p.drv.Session.ClickButtonByText(ctx, string(rel.Cardinality), p.drv.Timeout) {
		return browser.NewFlowError(flow, "cardinality", fmt.Errorf("cardinality option %q not found", rel.Cardinality))
	}

	if rel.Required {
		requiredCandidates := []browser.Candidate{
			{Selector: "input[type='checkbox'][id*='required']", Description: "required toggle by id"},
			{Selector: "input[type='checkbox']", Description: "required checkbox", MinY: 100},
		}
		if toggle, err := p.drv.Resolver.Resolve(ctx, "required toggle", requiredCandidates); err == nil {
			p.drv.Session.Click(ctx, toggle, p.drv.Timeout)
		}
	}

	reason := rel.Reason
	if reason == "" {
		reason = "Automated relation creation"
	}
	p.fillReason(ctx, reason)

	if !p.drv.Session.ClickButtonByText(ctx, "Create Relation", p.drv.Timeout) {
		if err := p.submit(ctx); err != nil {
			return browser.NewFlowError(flow, "submit", err)
		}
	}

	p.drv.log.Info().
		Str("relation", rel.Name).
		Str("target", rel.TargetType).
		Str("cardinality", string(rel.Cardinality)).
		Msg("Relation created")
	return nil
}

// CreateInstance opens the instance form for an object type and fills
// every classified field with the supplied values. Unknown fields are
// skipped and logged, never guessed at.
func (p *OntologyPage) CreateInstance(ctx context.Context, objectTypeName string, values map[string]string) error {
	const flow = "instance creation"

	if err := p.openTab(ctx, "Objects"); err != nil {
		return browser.NewFlowError(flow, "objects tab", err)
	}
	if !p.drv.Session.ClickButtonByText(ctx, "Create New Object", p.drv.Timeout) {
		return browser.NewFlowError(flow, "create button", fmt.Errorf("Create New Object control not found"))
	}

	formCandidates := []browser.Candidate{
		{Selector: "form", Description: "instance form"},
		{Selector: "[role='dialog']", Description: "instance dialog"},
	}
	formSel, err := p.drv.Resolver.ResolveWithin(ctx, "instance form", formCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, "form", err)
	}

	html := p.drv.Session.OuterHTML(ctx, formSel)
	fields := ClassifyInstanceForm(html)
	if len(fields) == 0 {
		return browser.NewFlowError(flow, "classify", fmt.Errorf("no classifiable fields in instance form"))
	}

	for _, field := range fields {
		value, ok := values[field.Label]
		if !ok {
			continue
		}
		if err := p.fillInstanceField(ctx, field, value); err != nil {
			return browser.NewFlowError(flow, "field "+field.Label, err)
		}
	}

	p.fillReason(ctx, "Automated instance creation")

	if err := p.submit(ctx); err != nil {
		return browser.NewFlowError(flow, "submit", err)
	}

	p.drv.log.Info().Str("object_type", objectTypeName).Int("fields", len(fields)).Msg("Instance created")
	return nil
}

// OpenInstance opens the named object instance from the Objects tab, or the
// first listed one when name is empty. Returns the name of the instance
// that was opened.
func (p *OntologyPage) OpenInstance(ctx context.Context, name string) (string, error) {
	const flow = "instance open"

	if err := p.openTab(ctx, "Objects"); err != nil {
		return "", browser.NewFlowError(flow, "objects tab", err)
	}

	entryCandidates := []browser.Candidate{
		{Selector: "span.primary", Description: "instance entry"},
		{Selector: "table tbody tr a", Description: "instance link in table"},
	}
	if name != "" {
		entryCandidates = withText(entryCandidates, name)
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "object instance", entryCandidates, p.drv.Timeout)
	if err != nil {
		return "", browser.NewFlowError(flow, "entry", err)
	}
	opened := p.drv.Session.GetText(ctx, sel)
	if !p.drv.Session.Click(ctx, sel, p.drv.Timeout) {
		return "", browser.NewFlowError(flow, "entry", fmt.Errorf("instance entry did not accept a click"))
	}
	return opened, nil
}

// UpdateInstance edits an existing object instance: the edit drawer's
// fields are re-classified from their rendered shape, every supplied value
// written through the matching fill, and the change saved with a reason.
// Unknown fields are skipped; identifier fields should not appear in values
// since the platform renders them disabled.
func (p *OntologyPage) UpdateInstance(ctx context.Context, instanceName string, values map[string]string) error {
	const flow = "instance update"

	opened, err := p.OpenInstance(ctx, instanceName)
	if err != nil {
		return err
	}

	if !p.drv.Session.ClickButtonByText(ctx, "View Properties", p.drv.Timeout) {
		return browser.NewFlowError(flow, "view properties", fmt.Errorf("View Properties control not found"))
	}

	formCandidates := []browser.Candidate{
		{Selector: "[class*='MuiDrawer-paper']", Description: "edit drawer"},
		{Selector: "form", Description: "edit form"},
		{Selector: "[role='dialog']", Description: "edit dialog"},
	}
	formSel, err := p.drv.Resolver.ResolveWithin(ctx, "edit form", formCandidates, p.drv.Timeout)
	if err != nil {
		return browser.NewFlowError(flow, "form", err)
	}

	html := p.drv.Session.OuterHTML(ctx, formSel)
	fields := ClassifyInstanceForm(html)
	if len(fields) == 0 {
		return browser.NewFlowError(flow, "classify", fmt.Errorf("no classifiable fields in edit form"))
	}

	updated := 0
	for _, field := range fields {
		value, ok := values[field.Label]
		if !ok {
			continue
		}
		if err := p.fillInstanceField(ctx, field, value); err != nil {
			return browser.NewFlowError(flow, "field "+field.Label, err)
		}
		updated++
	}

	p.fillReason(ctx, "Automated instance update")

	if !p.drv.Session.ClickButtonByText(ctx, "Update", p.drv.Timeout) {
		if err := p.submit(ctx); err != nil {
			return browser.NewFlowError(flow, "submit", err)
		}
	}

	p.drv.log.Info().Str("instance", opened).Int("fields", updated).Msg("Instance updated")
	return nil
}

func (p *OntologyPage) fillInstanceField(ctx context.Context, field InstanceField, value string) error {
	switch field.Kind {
	case models.FieldSingleLineText:
		return p.fillLabelled(ctx, field.Label, "input", value)
	case models.FieldMultiLineText:
		return p.fillLabelled(ctx, field.Label, "textarea", value)
	case models.FieldSingleSelect, models.FieldMultiSelect:
		return p.selectLabelled(ctx, field.Label, value)
	default:
		p.drv.log.Warn().Str("label", field.Label).Msg("Unknown field kind, skipping")
		return nil
	}
}

// fillLabelled fills the input or textarea nearest the given label.
func (p *OntologyPage) fillLabelled(ctx context.Context, label, element, value string) error {
	// Tag the element following the label via the resolver text filter on
	// the label, then fall back to placeholder matching.
	candidates := []browser.Candidate{
		{Selector: element + "[placeholder*='" + label + "']", Description: element + " by label placeholder"},
		{Selector: element + "[placeholder='Write here']", Description: element + " write-here"},
		{Selector: element, Description: "first " + element, MinY: 100},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, element+" for "+label, candidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Fill(ctx, sel, value, p.drv.Timeout) {
		return fmt.Errorf("%s for %q did not accept input", element, label)
	}
	return nil
}

func (p *OntologyPage) selectLabelled(ctx context.Context, label, value string) error {
	triggerCandidates := []browser.Candidate{
		{Selector: "input.custom-select__input", Description: "select input", MinY: 100},
	}
	sel, err := p.drv.Resolver.ResolveWithin(ctx, "select for "+label, triggerCandidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Fill(ctx, sel, value, p.drv.Timeout) {
		return fmt.Errorf("select for %q did not accept input", label)
	}
	optionCandidates := withText([]browser.Candidate{
		{Selector: "[role='option']", Description: "option by role"},
		{Selector: "[class*='option']", Description: "option by class"},
	}, value)
	opt, err := p.drv.Resolver.ResolveWithin(ctx, "option "+value, optionCandidates, p.drv.Timeout)
	if err != nil {
		return err
	}
	if !p.drv.Session.Click(ctx, opt, p.drv.Timeout) {
		return fmt.Errorf("option %q did not accept a click", value)
	}
	return nil
}
