package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// ResourceHandler handles guarded resource writes
type ResourceHandler struct {
	resources services.ResourceService
	resolver  services.IdentityResolver
	logger    *slog.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resources services.ResourceService, resolver services.IdentityResolver, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		resolver:  resolver,
		logger:    logger,
	}
}

// CreateResource creates a tenant-scoped resource owned by the caller
// POST /api/resources
// Returns 201 on success, 409 for cross-tenant parent linkage
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	var req services.CreateResourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource, err := h.resources.Create(r.Context(), caller, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resource)
}

// DeleteResource removes a resource the caller may delete
// DELETE /api/resources/{type}/{id}
// Returns 204 on success; denied and missing both report 404
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	resourceType := r.PathValue("type")
	id := r.PathValue("id")
	if resourceType == "" || id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "resource type and ID are required")
		return
	}

	if err := h.resources.Delete(r.Context(), caller, resourceType, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
