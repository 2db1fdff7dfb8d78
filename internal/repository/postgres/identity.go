package postgres

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/domain"
	"taskflow/internal/auth"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// LocalIdentityProvider implements auth.IdentityProvider on a Postgres
// table, for self-hosted deployments and seeding without the hosted auth
// service. Credentials are stored as bcrypt hashes; a must_change_password
// flag carries the forced-change requirement for admin-issued temporary
// credentials.
type LocalIdentityProvider struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewLocalIdentityProvider creates a Postgres-backed identity provider
func NewLocalIdentityProvider(config *RepositoryConfig) *LocalIdentityProvider {
	return &LocalIdentityProvider{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// CreateUser creates a new identity and returns its user ID
func (p *LocalIdentityProvider) CreateUser(ctx context.Context, identity auth.NewIdentity) (string, error) {
	// bcrypt ignores input past 72 bytes; reject instead of silently
	// truncating the credential
	if len(identity.Password) > 72 {
		return "", fmt.Errorf("%w: password exceeds 72 bytes", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(identity.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (email, password_hash, must_change_password, created_at)
		VALUES (lower($1), $2, $3, NOW())
		RETURNING id
	`, p.tables.Identities)

	var id string
	executor := GetExecutor(ctx, p.pool)
	err = executor.QueryRow(ctx, query,
		strings.TrimSpace(identity.Email),
		string(hash),
		identity.RequireChange,
	).Scan(&id)

	if err != nil {
		if IsPgDuplicateError(err) {
			return "", &domain.ConflictError{
				Message:      fmt.Sprintf("email %s is already registered", identity.Email),
				ResourceType: "user",
			}
		}
		return "", fmt.Errorf("create identity: %w", err)
	}

	return id, nil
}

// DeleteUser removes an identity. Missing identities are fine; the caller
// is tearing down access, not asserting existence.
func (p *LocalIdentityProvider) DeleteUser(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, p.tables.Identities)

	executor := GetExecutor(ctx, p.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	return nil
}

// FindUserIDByEmail returns the user ID for an email
func (p *LocalIdentityProvider) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE email = lower($1)
	`, p.tables.Identities)

	var id string
	executor := GetExecutor(ctx, p.pool)
	err := executor.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(&id)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("identity %s: %w", email, domain.ErrNotFound)
		}
		return "", fmt.Errorf("find identity: %w", err)
	}

	return id, nil
}

// VerifyCredential checks an email/password pair and reports whether a
// forced credential change is pending. Used by self-hosted login flows.
func (p *LocalIdentityProvider) VerifyCredential(ctx context.Context, email, password string) (userID string, mustChange bool, err error) {
	query := fmt.Sprintf(`
		SELECT id, password_hash, must_change_password
		FROM %s
		WHERE email = lower($1)
	`, p.tables.Identities)

	var hash string
	executor := GetExecutor(ctx, p.pool)
	err = executor.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(&userID, &hash, &mustChange)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", false, domain.ErrUnauthorized
		}
		return "", false, fmt.Errorf("load credential: %w", err)
	}

	// Constant-time comparison via bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", false, domain.ErrUnauthorized
	}

	return userID, mustChange, nil
}
