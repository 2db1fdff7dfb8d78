package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// MeHandler handles requests about the caller's own identity
type MeHandler struct {
	tenancy  services.TenancyService
	resolver services.IdentityResolver
	logger   *slog.Logger
}

// NewMeHandler creates a new identity handler
func NewMeHandler(tenancy services.TenancyService, resolver services.IdentityResolver, logger *slog.Logger) *MeHandler {
	return &MeHandler{
		tenancy:  tenancy,
		resolver: resolver,
		logger:   logger,
	}
}

// GetMe returns the caller's own profile
// GET /api/me
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	profile, err := h.tenancy.GetProfile(r.Context(), caller)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
