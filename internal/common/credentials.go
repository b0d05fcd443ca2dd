package common

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/dwitest/internal/models"
)

// LoadCredentials reads the role-to-credentials mapping from a JSON file
// (data/credentials.json). The file is read-only for the whole run; every
// role present must carry both a username and a password.
func LoadCredentials(path string) (models.CredentialSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var creds models.CredentialSet
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	validate := validator.New()
	for role, c := range creds {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("incomplete credentials for role %q: %w", role, err)
		}
	}

	return creds, nil
}

// MustCredentials returns the credentials for a role or an error naming the
// missing role, so tests fail with a readable message instead of a zero
// value.
func MustCredentials(creds models.CredentialSet, role models.Role) (models.Credentials, error) {
	c, ok := creds.For(role)
	if !ok {
		return models.Credentials{}, fmt.Errorf("no credentials configured for role %q", role)
	}
	return c, nil
}
