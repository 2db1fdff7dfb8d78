package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/models"
	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// AuthzHandler exposes the policy evaluator as a check endpoint so other
// services and UI code can ask "may I?" without duplicating policy rules.
type AuthzHandler struct {
	evaluator services.PolicyEvaluator
	resolver  services.IdentityResolver
	logger    *slog.Logger
}

// NewAuthzHandler creates a new authorization check handler
func NewAuthzHandler(evaluator services.PolicyEvaluator, resolver services.IdentityResolver, logger *slog.Logger) *AuthzHandler {
	return &AuthzHandler{
		evaluator: evaluator,
		resolver:  resolver,
		logger:    logger,
	}
}

type checkRequest struct {
	Resource  models.ResourceRef `json:"resource"`
	Operation models.Operation   `json:"operation"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

// Check evaluates one authorization decision for the caller
// POST /api/authz/check
// Always 200 with {"allowed": bool}; deny is a result, not an error
func (h *AuthzHandler) Check(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	var req checkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	allowed, err := h.evaluator.Can(r.Context(), caller, req.Resource, req.Operation)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, checkResponse{Allowed: allowed})
}
