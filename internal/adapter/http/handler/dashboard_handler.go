package handler

import (
	"context"
	"net/http"

	"github.com/mgiordano/pymebooks/internal/adapter/http/dto"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*usecase.Dashboard, error)
}

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Get returns the business overview.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUC.GetDashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(dashboard))
}
