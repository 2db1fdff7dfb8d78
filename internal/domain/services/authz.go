package services

import (
	"context"

	"taskflow/internal/domain/models"
)

// IdentityResolver maps an authenticated request to the caller's identity:
// user ID, tenant membership, role and operator capability.
//
// Resolution is a pure lookup with no cache. It runs once per request so an
// authorization decision always sees the caller's current profile; a role or
// company change takes effect on the very next request.
type IdentityResolver interface {
	// Resolve returns the identity for verified token claims. A subject
	// with no profile resolves to a deny-everything identity, not an error.
	Resolve(ctx context.Context, claims *models.AccessClaims) (models.Identity, error)
}

// PolicyEvaluator decides allow/deny for (identity, resource, operation).
//
// Deny is a normal return value, never an error: callers turn "no access"
// into their own user-facing message. The evaluator errors only for
// malformed input such as an unknown resource type.
type PolicyEvaluator interface {
	Can(ctx context.Context, identity models.Identity, resource models.ResourceRef, op models.Operation) (bool, error)
}

// ReferentialGuard enforces that a child resource only ever references a
// parent in the same tenant. For personal-mode pairs (both sides without a
// company) it additionally checks common ownership explicitly, since "null
// equals null" alone proves nothing.
type ReferentialGuard interface {
	// CheckParent validates the resource's parent link. Returns a
	// domain.ReferentialError for cross-tenant linkage, nil when the
	// resource has no parent.
	CheckParent(ctx context.Context, resource models.ResourceRef) error
}
