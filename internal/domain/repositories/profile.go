package repositories

import (
	"context"

	"taskflow/internal/domain/models"
)

// ProfileRepository defines data access operations for user-in-tenant
// mappings. Profiles are written only by trusted tenancy operations.
type ProfileRepository interface {
	// Create inserts a profile for a freshly created identity. A duplicate
	// user ID or email returns a domain.ConflictError.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByUserID retrieves the profile for a user, or domain.ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// GetByEmail retrieves a profile by case-insensitive email.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	// ListByCompany retrieves all profiles in a company, ordered by
	// created_at.
	ListByCompany(ctx context.Context, companyID string) ([]models.Profile, error)

	// UpdateRole sets the role of a profile.
	UpdateRole(ctx context.Context, userID string, role models.Role) error

	// UpdateCompany assigns a profile to a company.
	UpdateCompany(ctx context.Context, userID, companyID string) error

	// Delete removes a profile. Deleting a missing profile returns
	// domain.ErrNotFound so concurrent deletes stay idempotent.
	Delete(ctx context.Context, userID string) error
}

// OperatorRepository reads the out-of-band system-operator registry.
// Nothing in the API surface writes it; rows come from deploy tooling or
// the seed command only.
type OperatorRepository interface {
	// IsOperator reports whether the user ID is registered as an operator.
	IsOperator(ctx context.Context, userID string) (bool, error)

	// AnyExists reports whether any operator is registered at all. Used
	// only to gate first-run setup; leaks nothing else.
	AnyExists(ctx context.Context) (bool, error)

	// Grant registers a user as an operator. Reserved for seeding.
	Grant(ctx context.Context, userID string) error
}
