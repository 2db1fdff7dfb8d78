package handler

import (
	"log/slog"
	"net/http"

	"taskflow/internal/domain/repositories"
	"taskflow/internal/httputil"
)

// BootstrapHandler reports whether the deployment has been seeded with at
// least one system operator. Used by deploy tooling to decide whether the
// operator seed step still has to run.
type BootstrapHandler struct {
	operatorRepo repositories.OperatorRepository
	logger       *slog.Logger
}

// NewBootstrapHandler creates a new bootstrap status handler
func NewBootstrapHandler(operatorRepo repositories.OperatorRepository, logger *slog.Logger) *BootstrapHandler {
	return &BootstrapHandler{
		operatorRepo: operatorRepo,
		logger:       logger,
	}
}

// OperatorStatus reports whether any system operator exists
// GET /api/bootstrap/operator
func (h *BootstrapHandler) OperatorStatus(w http.ResponseWriter, r *http.Request) {
	configured, err := h.operatorRepo.AnyExists(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{
		"configured": configured,
	})
}
