package models

import "time"

// Role is a tenant-level role stored on a Profile. The system-operator
// capability is deliberately NOT a Role value: it is derived per request
// from the execution context (service credential or operator registry) and
// never persisted as tenant data, so it cannot be forged through any
// profile write path.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a role that may be stored on a profile.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Profile is the authoritative per-user record of tenant membership and
// role. Its (company_id, role) pair is the single source of truth for every
// authorization decision; it is mutated only by trusted tenancy operations,
// never directly by the owning user.
type Profile struct {
	UserID    string    `json:"user_id"`
	CompanyID *string   `json:"company_id"` // nil = personal workspace
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InCompany reports whether the profile belongs to the given tenant.
func (p *Profile) InCompany(companyID string) bool {
	return p.CompanyID != nil && *p.CompanyID == companyID
}
