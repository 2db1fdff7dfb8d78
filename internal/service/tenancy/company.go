package tenancy

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
)

// CreateCompany founds a company for an existing admin who has none yet,
// assigning their profile to it in the same transaction. System operators
// create companies without being assigned; they are not tenant-bound.
func (s *tenancyService) CreateCompany(ctx context.Context, caller models.Identity, name string) (*models.Company, error) {
	if !caller.IsSystemOperator {
		if !caller.HasProfile || caller.Role != models.RoleAdmin {
			return nil, &domain.ForbiddenError{Message: "you don't have access"}
		}
		// One company per admin at creation time
		if caller.CompanyID != nil {
			return nil, &domain.ValidationError{Message: "you already belong to a company"}
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "company name is required"}
	}
	if len(name) > config.MaxCompanyNameLength {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("company name exceeds %d characters", config.MaxCompanyNameLength),
		}
	}

	company := &models.Company{Name: name}
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Create(txCtx, company); err != nil {
			return err
		}
		if caller.IsSystemOperator {
			return nil
		}
		return s.profileRepo.UpdateCompany(txCtx, caller.UserID, company.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company created",
		"company_id", company.ID,
		"name", company.Name,
		"created_by", caller.UserID,
	)

	return company, nil
}
