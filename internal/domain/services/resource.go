package services

import (
	"context"

	"taskflow/internal/domain/models"
)

// CreateResourceRequest is the write-side input for a tenant-scoped
// resource. The owner is never part of the request; it is always the
// authenticated caller.
type CreateResourceRequest struct {
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	CompanyID *string           `json:"company_id"`
	Parent    *models.ParentRef `json:"parent,omitempty"`
}

// ResourceService is the guarded write path for tenant-scoped resources:
// policy evaluation first, then the referential guard, then storage.
type ResourceService interface {
	// Create authorizes and stores a resource for the caller.
	Create(ctx context.Context, caller models.Identity, req *CreateResourceRequest) (*models.Resource, error)

	// Delete authorizes and removes a resource. Denied and missing are
	// both reported as not-found so existence never leaks across tenants.
	Delete(ctx context.Context, caller models.Identity, resourceType, id string) error
}
