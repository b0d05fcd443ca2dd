package models

// Role identifies a platform user role with its own credential set.
type Role string

const (
	RoleGlobalAdmin      Role = "global_admin"
	RoleFacilityAdmin    Role = "facility_admin"
	RoleSupervisor       Role = "supervisor"
	RoleProcessPublisher Role = "process_publisher"
	RoleOperator         Role = "operator"
)

// Credentials is a single role's login pair, loaded from data/credentials.json.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CredentialSet maps role names to their credentials. The file is read once
// at suite start and never written.
type CredentialSet map[Role]Credentials

// For returns the credentials for a role and whether they exist.
func (c CredentialSet) For(role Role) (Credentials, bool) {
	creds, ok := c[role]
	return creds, ok
}
