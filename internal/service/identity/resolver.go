package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"
	"taskflow/internal/domain/services"
)

// profileResolver implements the IdentityResolver interface with a fresh
// profile lookup per request. No cache sits between a role change and the
// next authorization decision.
type profileResolver struct {
	profileRepo  repositories.ProfileRepository
	operatorRepo repositories.OperatorRepository
	logger       *slog.Logger
}

// NewResolver creates a new identity resolver
func NewResolver(
	profileRepo repositories.ProfileRepository,
	operatorRepo repositories.OperatorRepository,
	logger *slog.Logger,
) services.IdentityResolver {
	return &profileResolver{
		profileRepo:  profileRepo,
		operatorRepo: operatorRepo,
		logger:       logger,
	}
}

// Resolve maps verified token claims to the caller's identity. The token
// only names the subject; company and role always come from the profile
// row so caller-supplied data can never influence them.
func (r *profileResolver) Resolve(ctx context.Context, claims *models.AccessClaims) (models.Identity, error) {
	if claims == nil || claims.Subject == "" {
		return models.Identity{}, domain.ErrUnauthorized
	}

	id := models.Identity{UserID: claims.Subject}

	// The elevated service credential is the out-of-band operator path
	if claims.IsServiceRole() {
		id.IsSystemOperator = true
	}

	// The operator registry is the other out-of-band path. It must be
	// consulted before the profile lookup: a seeded operator has a row
	// here and no profile at all.
	if !id.IsSystemOperator {
		isOp, err := r.operatorRepo.IsOperator(ctx, claims.Subject)
		if err != nil {
			return models.Identity{}, fmt.Errorf("resolve operator capability: %w", err)
		}
		id.IsSystemOperator = isOp
	}

	profile, err := r.profileRepo.GetByUserID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// No profile means no access to anything tenant-scoped.
			// Not an error: the deny-everything identity is a normal
			// resolution result, and operator capability still applies.
			return id, nil
		}
		return models.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	id.HasProfile = true
	id.CompanyID = profile.CompanyID
	id.Role = profile.Role

	return id, nil
}
