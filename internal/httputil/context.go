package httputil

import (
	"context"
	"net/http"

	"taskflow/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey contextKey = "claims"
)

// WithClaims adds verified token claims to the request context
func WithClaims(r *http.Request, claims *models.AccessClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves verified claims from context, nil if not present
func GetClaims(r *http.Request) *models.AccessClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.AccessClaims)
	return claims
}

// GetUserID retrieves the authenticated user ID from context, empty string
// if the request is unauthenticated
func GetUserID(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}
