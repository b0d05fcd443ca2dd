package common

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/dwitest/internal/models"
)

// LoadOntologyFixture reads the ontology authoring input from a YAML file
// and validates the required fields before any browser work starts.
func LoadOntologyFixture(path string) (*models.OntologyFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology fixture %s: %w", path, err)
	}

	var fixture models.OntologyFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse ontology fixture %s: %w", path, err)
	}

	validate := validator.New()
	if err := validate.Struct(fixture.ObjectType); err != nil {
		return nil, fmt.Errorf("invalid object type in %s: %w", path, err)
	}
	for i, prop := range fixture.Properties {
		if err := validate.Struct(prop); err != nil {
			return nil, fmt.Errorf("invalid property %d in %s: %w", i, path, err)
		}
	}
	for i, rel := range fixture.Relations {
		if err := validate.Struct(rel); err != nil {
			return nil, fmt.Errorf("invalid relation %d in %s: %w", i, path, err)
		}
	}

	return &fixture, nil
}
