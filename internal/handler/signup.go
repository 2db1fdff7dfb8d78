package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// SignupHandler handles the public signup endpoint
type SignupHandler struct {
	tenancy services.TenancyService
	logger  *slog.Logger
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(tenancy services.TenancyService, logger *slog.Logger) *SignupHandler {
	return &SignupHandler{
		tenancy: tenancy,
		logger:  logger,
	}
}

// Signup creates a new identity, optionally founding a company
// POST /api/auth/signup
// Returns 201 on success, 409 when the company name is taken
func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.tenancy.Signup(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}
