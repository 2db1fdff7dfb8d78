package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/models"
	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// UserHandler handles administrative user management requests
type UserHandler struct {
	tenancy  services.TenancyService
	resolver services.IdentityResolver
	logger   *slog.Logger
}

// NewUserHandler creates a new user management handler
func NewUserHandler(tenancy services.TenancyService, resolver services.IdentityResolver, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		tenancy:  tenancy,
		resolver: resolver,
		logger:   logger,
	}
}

// ListUsers returns all profiles in the caller's company
// GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	profiles, err := h.tenancy.ListUsers(r.Context(), caller)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.Profile{
		"users": profiles,
	})
}

// CreateUser creates a team member in the caller's company
// POST /api/admin/users
// Returns 201 with the one-time temporary credential
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.tenancy.CreateUser(r.Context(), caller, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// UpdateUserRole changes another member's role
// PATCH /api/admin/users/{id}/role
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var req services.UpdateUserRoleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.tenancy.UpdateUserRole(r.Context(), caller, targetID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// DeleteUser removes a team member
// DELETE /api/admin/users/{id}
// Returns 204 on success
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	if err := h.tenancy.DeleteUser(r.Context(), caller, targetID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
