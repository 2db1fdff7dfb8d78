package postgres

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCompanyRepository implements the CompanyRepository interface
type PostgresCompanyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(config *RepositoryConfig) repositories.CompanyRepository {
	return &PostgresCompanyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new company. The unique index on lower(name) decides
// concurrent creates racing on one name: exactly one insert wins, the
// loser gets a retryable conflict.
func (r *PostgresCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`, r.tables.Companies)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, company.Name).
		Scan(&company.ID, &company.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			// No recovery lookup here: inside ExecTx the transaction is
			// already aborted after the failed insert, so any further
			// statement on the same connection would fail too.
			return &domain.ConflictError{
				Message:      fmt.Sprintf("company %q already exists, contact your admin for an invite", company.Name),
				ResourceType: "company",
			}
		}
		return fmt.Errorf("create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Companies)

	var company models.Company
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("company %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &company, nil
}

// GetByName retrieves a company by case-insensitive trimmed name
func (r *PostgresCompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE lower(name) = lower(btrim($1))
	`, r.tables.Companies)

	var company models.Company
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, name).Scan(
		&company.ID,
		&company.Name,
		&company.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("company %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}

	return &company, nil
}
