package postgres

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a profile for a freshly created identity
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, company_id, role, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		profile.UserID,
		profile.CompanyID,
		profile.Role,
		profile.Email,
		profile.FirstName,
		profile.LastName,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("profile for %s already exists", profile.Email),
				ResourceType: "profile",
				ResourceID:   profile.UserID,
			}
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile for a user
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, company_id, role, email, first_name, last_name, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Profiles)

	return r.scanOne(ctx, query, userID)
}

// GetByEmail retrieves a profile by case-insensitive email
func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, company_id, role, email, first_name, last_name, created_at, updated_at
		FROM %s
		WHERE lower(email) = lower($1)
	`, r.tables.Profiles)

	return r.scanOne(ctx, query, email)
}

// ListByCompany retrieves all profiles in a company, ordered by created_at
func (r *PostgresProfileRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, company_id, role, email, first_name, last_name, created_at, updated_at
		FROM %s
		WHERE company_id = $1
		ORDER BY created_at
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.UserID,
			&p.CompanyID,
			&p.Role,
			&p.Email,
			&p.FirstName,
			&p.LastName,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// UpdateRole sets the role of a profile
func (r *PostgresProfileRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET role = $2, updated_at = NOW()
		WHERE user_id = $1
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// UpdateCompany assigns a profile to a company
func (r *PostgresProfileRepository) UpdateCompany(ctx context.Context, userID, companyID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET company_id = $2, updated_at = NOW()
		WHERE user_id = $1
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, userID, companyID)
	if err != nil {
		return fmt.Errorf("update profile company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a profile. Reports not-found on zero rows so a second
// delete of the same target stays a clean "not found".
func (r *PostgresProfileRepository) Delete(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresProfileRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Profile, error) {
	var p models.Profile
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&p.UserID,
		&p.CompanyID,
		&p.Role,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("profile: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}
