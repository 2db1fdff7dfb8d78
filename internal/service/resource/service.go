package resource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"
	"taskflow/internal/domain/services"
)

// resourceService implements the ResourceService interface: the single
// write path collaborators use for tenant-scoped resources. Order matters:
// policy first, then the referential guard, then storage, where the
// composite keys back the guard up.
type resourceService struct {
	resourceRepo repositories.ResourceRepository
	evaluator    services.PolicyEvaluator
	guard        services.ReferentialGuard
	logger       *slog.Logger
}

// NewService creates a new resource service
func NewService(
	resourceRepo repositories.ResourceRepository,
	evaluator services.PolicyEvaluator,
	guard services.ReferentialGuard,
	logger *slog.Logger,
) services.ResourceService {
	return &resourceService{
		resourceRepo: resourceRepo,
		evaluator:    evaluator,
		guard:        guard,
		logger:       logger,
	}
}

// Create authorizes and stores a resource for the caller
func (s *resourceService) Create(ctx context.Context, caller models.Identity, req *services.CreateResourceRequest) (*models.Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "name is required"}
	}
	if len(name) > config.MaxResourceNameLength {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("name exceeds %d characters", config.MaxResourceNameLength),
		}
	}

	// The owner is always the caller; the descriptor the evaluator sees
	// is built here, not taken from the request
	ref := models.ResourceRef{
		Type:      req.Type,
		OwnerID:   caller.UserID,
		CompanyID: req.CompanyID,
		Parent:    req.Parent,
	}

	allowed, err := s.evaluator.Can(ctx, caller, ref, models.OpCreate)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &domain.ForbiddenError{Message: "you don't have access"}
	}

	if err := s.guard.CheckParent(ctx, ref); err != nil {
		return nil, err
	}

	res := &models.Resource{
		Type:      req.Type,
		Name:      name,
		OwnerID:   caller.UserID,
		CompanyID: req.CompanyID,
	}
	if req.Parent != nil {
		res.ParentID = &req.Parent.ID
	}

	if err := s.resourceRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("resource created",
		"type", res.Type,
		"id", res.ID,
		"owner_id", res.OwnerID,
	)

	return res, nil
}

// Delete authorizes and removes a resource. A denied delete is reported as
// not-found so the caller cannot confirm existence across tenants.
func (s *resourceService) Delete(ctx context.Context, caller models.Identity, resourceType, id string) error {
	ref, err := s.resourceRepo.GetRef(ctx, resourceType, id)
	if err != nil {
		return err
	}

	allowed, err := s.evaluator.Can(ctx, caller, *ref, models.OpDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%s %s: %w", resourceType, id, domain.ErrNotFound)
	}

	return s.resourceRepo.Delete(ctx, resourceType, id)
}
