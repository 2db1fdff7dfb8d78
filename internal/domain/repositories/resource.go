package repositories

import (
	"context"

	"taskflow/internal/domain/models"
)

// ResourceRepository defines data access operations for tenant-scoped
// resources. All resource types share one column shape, so a single
// implementation serves every type in the catalog.
type ResourceRepository interface {
	// Create inserts a resource. A parent in another tenant violates the
	// composite (company_id, parent_id) relationship and returns a
	// domain.ReferentialError; the write is refused, never filtered.
	Create(ctx context.Context, resource *models.Resource) error

	// GetRef loads the authorization descriptor for a resource without
	// tenant filtering. Callers run the descriptor through the policy
	// evaluator before acting on it.
	GetRef(ctx context.Context, resourceType, id string) (*models.ResourceRef, error)

	// Delete removes a resource, or returns domain.ErrNotFound.
	Delete(ctx context.Context, resourceType, id string) error
}
