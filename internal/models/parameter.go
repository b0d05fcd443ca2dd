package models

// ParameterType tags a task parameter with its field type. The same
// enumeration is reused for ontology property types.
type ParameterType string

const (
	ParameterNumber       ParameterType = "NUMBER"
	ParameterSingleLine   ParameterType = "SINGLE_LINE"
	ParameterMultiLine    ParameterType = "MULTI_LINE"
	ParameterDate         ParameterType = "DATE"
	ParameterDateTime     ParameterType = "DATE_TIME"
	ParameterResource     ParameterType = "RESOURCE"
	ParameterSingleSelect ParameterType = "SINGLE_SELECT"
	ParameterMultiSelect  ParameterType = "MULTI_SELECT"
	ParameterYesNo        ParameterType = "YES_NO"
	ParameterMedia        ParameterType = "MEDIA"
)

// FieldKind is the result of classifying a rendered form field by its DOM
// shape. Unknown is an explicit outcome: callers skip the field and log it
// rather than guessing.
type FieldKind string

const (
	FieldSingleLineText FieldKind = "singlelinetext"
	FieldMultiLineText  FieldKind = "multilinetext"
	FieldSingleSelect   FieldKind = "singleselect"
	FieldMultiSelect    FieldKind = "multiselect"
	FieldUnknown        FieldKind = "unknown"
)
