package services

import (
	"context"

	"taskflow/internal/domain/models"
)

// SignupRequest carries the input of the public signup operation.
// CompanyName is optional: empty means a personal workspace.
type SignupRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// SignupResult is returned to the caller establishing the new identity.
// The identity was created with exactly these company/role values; the
// client cannot substitute its own.
type SignupResult struct {
	UserID        string       `json:"user_id"`
	CompanyID     *string      `json:"company_id"`
	Role          models.Role  `json:"role"`
	WorkspaceType string       `json:"workspace_type"` // "company" or "personal"
}

// CreateUserRequest carries the input of administrative user creation.
// There is deliberately no company field: the new user always inherits the
// creating admin's tenant.
type CreateUserRequest struct {
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
}

// CreateUserResult returns the new user and its one-time temporary
// credential, to be transmitted out-of-band. The credential requires a
// forced change on first use.
type CreateUserResult struct {
	UserID         string `json:"user_id"`
	TempCredential string `json:"temp_credential"`
}

// UpdateUserRoleRequest changes a team member's role.
type UpdateUserRoleRequest struct {
	Role models.Role `json:"role"`
}

// TenancyService groups the trusted, privileged operations that mutate
// identity/tenancy state. Each operation re-validates its own preconditions
// server-side and runs atomically; none of them trusts the generic policy
// check alone.
type TenancyService interface {
	// Signup creates a new identity, optionally founding a company. A
	// case-insensitive name collision fails with a conflict; the caller is
	// told to ask their admin for access instead of silently joining.
	Signup(ctx context.Context, req *SignupRequest) (*SignupResult, error)

	// CreateUser creates a team member inside the caller's own company,
	// regardless of any tenant the request might otherwise carry.
	CreateUser(ctx context.Context, caller models.Identity, req *CreateUserRequest) (*CreateUserResult, error)

	// DeleteUser removes a team member. Self-delete always fails; a
	// cross-tenant target reports not-found, indistinguishable from a
	// missing user.
	DeleteUser(ctx context.Context, caller models.Identity, targetUserID string) error

	// UpdateUserRole changes another member's role. The caller can never
	// target their own profile through this path.
	UpdateUserRole(ctx context.Context, caller models.Identity, targetUserID string, req *UpdateUserRoleRequest) (*models.Profile, error)

	// ListUsers returns all profiles in the caller's company.
	ListUsers(ctx context.Context, caller models.Identity) ([]models.Profile, error)

	// CreateCompany founds a company for a companyless admin, assigning
	// their profile to it. System operators create unowned companies.
	CreateCompany(ctx context.Context, caller models.Identity, name string) (*models.Company, error)

	// GetProfile returns the caller's own profile.
	GetProfile(ctx context.Context, caller models.Identity) (*models.Profile, error)
}
