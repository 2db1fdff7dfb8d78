package guard

import (
	"context"
	"fmt"
	"log/slog"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"
	"taskflow/internal/domain/services"
	"taskflow/internal/metrics"
	"taskflow/internal/policy"
)

// referentialGuard implements the ReferentialGuard interface. The
// composite foreign keys in storage already refuse cross-tenant parents
// for company-mode rows; this service duplicates the check up front for a
// precise error, and covers the personal-mode case the constraint cannot
// express (NULL company on both sides says nothing about shared ownership).
type referentialGuard struct {
	resourceRepo repositories.ResourceRepository
	catalog      *policy.Registry
	logger       *slog.Logger
}

// NewGuard creates a new referential integrity guard
func NewGuard(
	resourceRepo repositories.ResourceRepository,
	catalog *policy.Registry,
	logger *slog.Logger,
) services.ReferentialGuard {
	return &referentialGuard{
		resourceRepo: resourceRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// CheckParent validates a resource's parent link. A violation is a refusal,
// not a silent filter: the caller must learn the write did not happen.
func (g *referentialGuard) CheckParent(ctx context.Context, res models.ResourceRef) error {
	if res.Parent == nil {
		return nil
	}

	rt, err := g.catalog.Get(res.Type)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if rt.Parent == "" || res.Parent.Type != rt.Parent {
		return &domain.ValidationError{
			Message: fmt.Sprintf("%s cannot reference a %s parent", res.Type, res.Parent.Type),
		}
	}

	parent, err := g.resourceRepo.GetRef(ctx, res.Parent.Type, res.Parent.ID)
	if err != nil {
		return err
	}

	if violation := crossTenant(res, parent); violation != "" {
		// Well-behaved clients never get here; log it loudly
		g.logger.Warn("cross-tenant reference refused",
			"child_type", res.Type,
			"parent_type", parent.Type,
			"parent_id", parent.ID,
			"reason", violation,
		)
		metrics.RecordReferentialViolation(res.Type)
		return &domain.ReferentialError{
			Message:    fmt.Sprintf("%s may only reference a %s in the same tenant", res.Type, parent.Type),
			ChildType:  res.Type,
			ParentType: parent.Type,
			ParentID:   parent.ID,
		}
	}

	return nil
}

// crossTenant returns a non-empty reason when the child/parent pair spans
// tenants or, in personal mode, owners.
func crossTenant(child models.ResourceRef, parent *models.ResourceRef) string {
	switch {
	case child.CompanyID == nil && parent.CompanyID == nil:
		// Personal mode: the constraint's NULL semantics prove nothing,
		// ownership must line up explicitly
		if child.OwnerID != parent.OwnerID {
			return "personal-mode owner mismatch"
		}
		return ""
	case child.CompanyID == nil || parent.CompanyID == nil:
		return "mixed personal/company linkage"
	case *child.CompanyID != *parent.CompanyID:
		return "company mismatch"
	default:
		return ""
	}
}
