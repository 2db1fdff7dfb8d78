package tenancy

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateUser creates a team member inside the caller's own company.
//
// The request carries no company field at all: the new user inherits the
// creating admin's tenant, full stop. Role values outside admin/user are
// rejected, so an elevated capability can never be granted through this
// path.
func (s *tenancyService) CreateUser(ctx context.Context, caller models.Identity, req *services.CreateUserRequest) (*services.CreateUserResult, error) {
	if !caller.HasProfile || caller.Role != models.RoleAdmin || caller.CompanyID == nil {
		return nil, &domain.ForbiddenError{Message: "you don't have access"}
	}

	if err := validateCreateUser(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Caller's tenant, not anything from the request
	companyID := *caller.CompanyID
	tempCredential := newTempCredential()

	var result *services.CreateUserResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		profile := &models.Profile{
			CompanyID: &companyID,
			Role:      req.Role,
			Email:     strings.TrimSpace(req.Email),
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}

		err := s.createIdentityWithProfile(txCtx, auth.NewIdentity{
			Email:         profile.Email,
			Password:      tempCredential,
			FirstName:     profile.FirstName,
			LastName:      profile.LastName,
			RequireChange: true,
			AppMetadata: map[string]interface{}{
				"company_id": companyID,
				"role":       string(req.Role),
			},
		}, profile)
		if err != nil {
			return err
		}

		result = &services.CreateUserResult{
			UserID:         profile.UserID,
			TempCredential: tempCredential,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"user_id", result.UserID,
		"company_id", companyID,
		"role", req.Role,
		"created_by", caller.UserID,
	)

	return result, nil
}

// DeleteUser removes a team member's profile and identity. The profile
// removal alone already revokes all application-level access (default deny
// on missing profile).
func (s *tenancyService) DeleteUser(ctx context.Context, caller models.Identity, targetUserID string) error {
	if !caller.IsSystemOperator && (!caller.HasProfile || caller.Role != models.RoleAdmin) {
		return &domain.ForbiddenError{Message: "you don't have access"}
	}

	if targetUserID == "" {
		return &domain.ValidationError{Message: "user id is required"}
	}
	if targetUserID == caller.UserID {
		return fmt.Errorf("cannot delete your own account: %w", domain.ErrSelfDelete)
	}

	target, err := s.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		// Includes the already-deleted case: a second delete reports
		// not-found instead of corrupting anything
		return err
	}

	// A company admin only reaches targets in their own company. Anything
	// else reads as not-found: missing and invisible are the same answer.
	if !caller.IsSystemOperator {
		if caller.CompanyID == nil || target.CompanyID == nil || *caller.CompanyID != *target.CompanyID {
			return fmt.Errorf("user %s: %w", targetUserID, domain.ErrNotFound)
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.profileRepo.Delete(txCtx, targetUserID); err != nil {
			return err
		}
		return s.provider.DeleteUser(txCtx, targetUserID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted",
		"user_id", targetUserID,
		"deleted_by", caller.UserID,
	)

	return nil
}

// UpdateUserRole changes another member's role. The caller's own profile is
// out of reach on this path, which is what keeps an admin from escalating
// or laterally moving themselves.
func (s *tenancyService) UpdateUserRole(ctx context.Context, caller models.Identity, targetUserID string, req *services.UpdateUserRoleRequest) (*models.Profile, error) {
	if !caller.IsSystemOperator && (!caller.HasProfile || caller.Role != models.RoleAdmin) {
		return nil, &domain.ForbiddenError{Message: "you don't have access"}
	}

	if !req.Role.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid role %q", req.Role)}
	}
	if targetUserID == caller.UserID {
		return nil, &domain.ForbiddenError{Message: "you cannot change your own role"}
	}

	target, err := s.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if !caller.IsSystemOperator {
		if caller.CompanyID == nil || target.CompanyID == nil || *caller.CompanyID != *target.CompanyID {
			return nil, fmt.Errorf("user %s: %w", targetUserID, domain.ErrNotFound)
		}
	}

	if err := s.profileRepo.UpdateRole(ctx, targetUserID, req.Role); err != nil {
		return nil, err
	}

	s.logger.Info("user role updated",
		"user_id", targetUserID,
		"role", req.Role,
		"updated_by", caller.UserID,
	)

	return s.profileRepo.GetByUserID(ctx, targetUserID)
}

func validateCreateUser(req *services.CreateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email,
			validation.Required,
			validation.Length(1, config.MaxEmailLength),
			is.EmailFormat),
		validation.Field(&req.FirstName,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength)),
		validation.Field(&req.LastName,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength)),
		validation.Field(&req.Role,
			validation.Required,
			validation.In(models.RoleAdmin, models.RoleUser)),
	)
}
