package repositories

import (
	"context"

	"taskflow/internal/domain/models"
)

// CompanyRepository defines data access operations for tenants.
type CompanyRepository interface {
	// Create inserts a new company. The name must already be trimmed;
	// a case-insensitive duplicate returns a domain.ConflictError backed
	// by the storage layer's unique index, so concurrent creates racing
	// on one name cannot both win.
	Create(ctx context.Context, company *models.Company) error

	// GetByID retrieves a company by ID.
	GetByID(ctx context.Context, id string) (*models.Company, error)

	// GetByName retrieves a company by case-insensitive trimmed name.
	GetByName(ctx context.Context, name string) (*models.Company, error)
}
