package tenancy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"
	"taskflow/internal/domain/services"

	"github.com/google/uuid"
)

// tenancyService implements the TenancyService interface. Every operation
// re-validates its preconditions server-side and runs its writes through
// the transaction manager so no partial identity/tenancy state survives a
// failure.
type tenancyService struct {
	companyRepo repositories.CompanyRepository
	profileRepo repositories.ProfileRepository
	provider    auth.IdentityProvider
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewService creates a new tenancy service
func NewService(
	companyRepo repositories.CompanyRepository,
	profileRepo repositories.ProfileRepository,
	provider auth.IdentityProvider,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TenancyService {
	return &tenancyService{
		companyRepo: companyRepo,
		profileRepo: profileRepo,
		provider:    provider,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetProfile returns the caller's own profile
func (s *tenancyService) GetProfile(ctx context.Context, caller models.Identity) (*models.Profile, error) {
	if !caller.HasProfile {
		return nil, fmt.Errorf("profile: %w", domain.ErrNotFound)
	}
	return s.profileRepo.GetByUserID(ctx, caller.UserID)
}

// ListUsers returns all profiles in the caller's company
func (s *tenancyService) ListUsers(ctx context.Context, caller models.Identity) ([]models.Profile, error) {
	if !caller.HasProfile || caller.Role != models.RoleAdmin {
		return nil, &domain.ForbiddenError{Message: "you don't have access"}
	}
	if caller.CompanyID == nil {
		return nil, &domain.ValidationError{Message: "you don't belong to a company"}
	}

	return s.profileRepo.ListByCompany(ctx, *caller.CompanyID)
}

// createIdentityWithProfile creates the identity at the provider and its
// profile in one unit of work. Both run inside the surrounding transaction;
// if the profile insert fails after the identity exists, the identity is
// deleted before the transaction rolls back so no orphan survives either
// side of the boundary.
func (s *tenancyService) createIdentityWithProfile(ctx context.Context, identity auth.NewIdentity, profile *models.Profile) error {
	userID, err := s.provider.CreateUser(ctx, identity)
	if err != nil {
		return err
	}

	profile.UserID = userID
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if delErr := s.provider.DeleteUser(ctx, userID); delErr != nil {
			s.logger.Error("failed to compensate identity creation",
				"user_id", userID,
				"error", delErr,
			)
		}
		return err
	}

	return nil
}

// newTempCredential generates a one-time temporary credential. Delivered
// out-of-band exactly once; the provider forces a change on first use.
func newTempCredential() string {
	return uuid.NewString()
}

// isConflict reports whether err is any uniqueness conflict.
func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
