package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/services"
	"taskflow/internal/httputil"
)

// CompanyHandler handles company creation requests
type CompanyHandler struct {
	tenancy  services.TenancyService
	resolver services.IdentityResolver
	logger   *slog.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(tenancy services.TenancyService, resolver services.IdentityResolver, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{
		tenancy:  tenancy,
		resolver: resolver,
		logger:   logger,
	}
}

type createCompanyRequest struct {
	Name string `json:"name"`
}

// CreateCompany founds a company for a companyless admin or, for system
// operators, an unowned company
// POST /api/companies
// Returns 201 on success, 409 when the name is taken
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveIdentity(r.Context(), w, r, h.resolver)
	if !ok {
		return
	}

	var req createCompanyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.tenancy.CreateCompany(r.Context(), caller, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, company)
}
