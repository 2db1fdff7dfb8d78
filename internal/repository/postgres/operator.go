package postgres

import (
	"context"
	"fmt"

	"taskflow/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOperatorRepository implements the OperatorRepository interface.
// The operators table lives apart from profiles: operator capability is
// never tenant data, and no API handler writes this table.
type PostgresOperatorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(config *RepositoryConfig) repositories.OperatorRepository {
	return &PostgresOperatorRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// IsOperator reports whether the user ID is registered as an operator
func (r *PostgresOperatorRepository) IsOperator(ctx context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE user_id = $1)
	`, r.tables.Operators)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check operator: %w", err)
	}

	return exists, nil
}

// AnyExists reports whether any operator is registered at all
func (r *PostgresOperatorRepository) AnyExists(ctx context.Context) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s)
	`, r.tables.Operators)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("check operators exist: %w", err)
	}

	return exists, nil
}

// Grant registers a user as an operator. Idempotent.
func (r *PostgresOperatorRepository) Grant(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, r.tables.Operators)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("grant operator: %w", err)
	}

	return nil
}
