package handler

import (
	"context"
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var refErr *domain.ReferentialError

	switch {
	case errors.Is(err, domain.ErrSelfDelete):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &refErr):
		httputil.RespondError(w, http.StatusConflict, refErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// resolveIdentity resolves the caller's identity from the verified claims
// placed in the request context by the auth middleware. Responds with 401
// and returns false when the request is unauthenticated.
func resolveIdentity(ctx context.Context, w http.ResponseWriter, r *http.Request, resolver services.IdentityResolver) (models.Identity, bool) {
	claims := httputil.GetClaims(r)
	if claims == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return models.Identity{}, false
	}

	identity, err := resolver.Resolve(ctx, claims)
	if err != nil {
		handleError(w, err)
		return models.Identity{}, false
	}
	return identity, true
}
