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

// Signup creates a new identity, optionally founding a company.
//
// A provided company name is checked case-insensitively against existing
// companies and a match FAILS the signup: nobody joins a company just by
// typing its name; the admin has to create the account. The check is the
// storage layer's unique index, so two signups racing on one new name
// resolve atomically; the loser gets a retryable conflict.
func (s *tenancyService) Signup(ctx context.Context, req *services.SignupRequest) (*services.SignupResult, error) {
	if err := validateSignup(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	companyName := strings.TrimSpace(req.CompanyName)

	// Every new signup gets the admin role, company-founding or not. For
	// a personal workspace there is nothing to administer, so the role is
	// inert. Documented behavior, preserved as-is pending the system
	// owner's confirmation.
	role := models.RoleAdmin

	var result *services.SignupResult
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var companyID *string
		workspaceType := "personal"

		if companyName != "" {
			company := &models.Company{Name: companyName}
			if err := s.companyRepo.Create(txCtx, company); err != nil {
				return err
			}
			companyID = &company.ID
			workspaceType = "company"
		}

		// The identity carries the resolved pair in provider-side
		// metadata, so the identity-creation step and the profile row
		// cannot disagree and the client has nothing to substitute
		appMeta := map[string]interface{}{"role": string(role)}
		if companyID != nil {
			appMeta["company_id"] = *companyID
		}

		profile := &models.Profile{
			CompanyID: companyID,
			Role:      role,
			Email:     strings.TrimSpace(req.Email),
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}

		err := s.createIdentityWithProfile(txCtx, auth.NewIdentity{
			Email:       profile.Email,
			Password:    req.Password,
			FirstName:   profile.FirstName,
			LastName:    profile.LastName,
			AppMetadata: appMeta,
		}, profile)
		if err != nil {
			return err
		}

		result = &services.SignupResult{
			UserID:        profile.UserID,
			CompanyID:     companyID,
			Role:          role,
			WorkspaceType: workspaceType,
		}
		return nil
	})
	if err != nil {
		if isConflict(err) {
			s.logger.Info("signup conflict", "email", req.Email, "company_name", companyName)
		}
		return nil, err
	}

	s.logger.Info("signup completed",
		"user_id", result.UserID,
		"workspace_type", result.WorkspaceType,
	)

	return result, nil
}

func validateSignup(req *services.SignupRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CompanyName,
			validation.Length(0, config.MaxCompanyNameLength)),
		validation.Field(&req.Email,
			validation.Required,
			validation.Length(1, config.MaxEmailLength),
			is.EmailFormat),
		validation.Field(&req.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength)),
		validation.Field(&req.FirstName,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength)),
		validation.Field(&req.LastName,
			validation.Required,
			validation.Length(1, config.MaxPersonNameLength)),
	)
}
