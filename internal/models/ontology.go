package models

// Cardinality of a relation between two object types.
type Cardinality string

const (
	OneToOne  Cardinality = "One-To-One"
	OneToMany Cardinality = "One-To-Many"
)

// ObjectType is a user-defined schema entity authored through the ontology
// page. Title and identifier properties are mandatory parts of the creation
// form.
type ObjectType struct {
	DisplayName           string `yaml:"display_name" validate:"required"`
	PluralName            string `yaml:"plural_name" validate:"required"`
	Description           string `yaml:"description"`
	TitleProperty         string `yaml:"title_property" validate:"required"`
	TitleDescription      string `yaml:"title_description"`
	IdentifierProperty    string `yaml:"identifier_property" validate:"required"`
	IdentifierDescription string `yaml:"identifier_description"`
}

// Property is a typed property added to an object type. Options apply only
// to select-style types. Reason is the audit string the platform requires
// on creation.
type Property struct {
	Label       string        `yaml:"label" validate:"required"`
	Description string        `yaml:"description"`
	Type        ParameterType `yaml:"type" validate:"required"`
	Options     []string      `yaml:"options"`
	Reason      string        `yaml:"reason"`
}

// Relation links an object type to another with a cardinality and a
// required flag.
type Relation struct {
	Name        string      `yaml:"name" validate:"required"`
	TargetType  string      `yaml:"target_type" validate:"required"`
	Cardinality Cardinality `yaml:"cardinality" validate:"required"`
	Required    bool        `yaml:"required"`
	Reason      string      `yaml:"reason"`
}

// OntologyFixture is the authoring input loaded from
// data/ontology_fixtures.yaml: one object type plus the properties and
// relations to create on it.
type OntologyFixture struct {
	ObjectType ObjectType `yaml:"object_type"`
	Properties []Property `yaml:"properties"`
	Relations  []Relation `yaml:"relations"`
}
