package auth

import (
	"context"

	"taskflow/internal/domain/models"
)

// TokenVerifier defines the interface for access-token verification.
// This abstraction keeps the middleware agnostic to where keys come from
// (JWKS endpoint, static key, test stub).
type TokenVerifier interface {
	// VerifyToken validates a JWT string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid
	// signature.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier (e.g. HTTP
	// connections for JWKS refresh).
	Close() error
}

// NewIdentity is the input for creating an identity at the provider.
type NewIdentity struct {
	Email     string
	Password  string
	FirstName string
	LastName  string

	// RequireChange forces a credential change on first use. Set for
	// admin-issued temporary credentials.
	RequireChange bool

	// AppMetadata is provider-side metadata the user cannot edit. The
	// signup flow records the resolved (company_id, role) pair here so the
	// identity-creation step and the profile-creation step always agree.
	AppMetadata map[string]interface{}
}

// IdentityProvider manages identity records with elevated privilege. Two
// implementations exist: an Admin-API client for the hosted auth service
// and a Postgres-backed store for self-hosted deployments. Tenancy
// operations only ever talk to this interface.
type IdentityProvider interface {
	// CreateUser creates a new identity and returns its user ID. An
	// already-registered email returns domain.ErrConflict.
	CreateUser(ctx context.Context, identity NewIdentity) (string, error)

	// DeleteUser removes an identity. Deleting a missing identity is not
	// an error; application-level access is already gone the moment the
	// profile is removed.
	DeleteUser(ctx context.Context, userID string) error

	// FindUserIDByEmail returns the user ID for an email, or
	// domain.ErrNotFound.
	FindUserIDByEmail(ctx context.Context, email string) (string, error)
}
