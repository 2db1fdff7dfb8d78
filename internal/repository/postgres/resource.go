package postgres

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresResourceRepository implements the ResourceRepository interface.
// Every resource type shares the (owner_id, company_id, parent_id) column
// shape, so one implementation covers the whole catalog; only the table
// name varies per type.
type PostgresResourceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(config *RepositoryConfig) repositories.ResourceRepository {
	return &PostgresResourceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a resource. The composite foreign key
// (company_id, parent_id) -> parent(company_id, id) makes a cross-tenant
// parent physically unreferenceable; the violation surfaces here as a
// ReferentialError instead of being filtered away.
func (r *PostgresResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	table, err := r.tables.Resource(resource.Type)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, owner_id, company_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, table)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		resource.Name,
		resource.OwnerID,
		resource.CompanyID,
		resource.ParentID,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			parentID := ""
			if resource.ParentID != nil {
				parentID = *resource.ParentID
			}
			return &domain.ReferentialError{
				Message:   fmt.Sprintf("%s references a parent outside its tenant", resource.Type),
				ChildType: resource.Type,
				ParentID:  parentID,
			}
		}
		return fmt.Errorf("create %s: %w", resource.Type, err)
	}

	return nil
}

// GetRef loads the authorization descriptor for a resource. No tenant
// filter here: visibility is the evaluator's decision, not the store's.
func (r *PostgresResourceRepository) GetRef(ctx context.Context, resourceType, id string) (*models.ResourceRef, error) {
	table, err := r.tables.Resource(resourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, company_id
		FROM %s
		WHERE id = $1
	`, table)

	ref := models.ResourceRef{Type: resourceType}
	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query, id).Scan(
		&ref.ID,
		&ref.OwnerID,
		&ref.CompanyID,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%s %s: %w", resourceType, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s ref: %w", resourceType, err)
	}

	return &ref, nil
}

// Delete removes a resource
func (r *PostgresResourceRepository) Delete(ctx context.Context, resourceType, id string) error {
	table, err := r.tables.Resource(resourceType)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, table)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resourceType, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", resourceType, id, domain.ErrNotFound)
	}

	return nil
}
