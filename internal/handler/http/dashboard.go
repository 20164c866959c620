package http

import (
	"net/http"

	"github.com/sitecrew/workforce-backend/internal/domain/dashboard"
	"github.com/sitecrew/workforce-backend/internal/handler/http/response"
)

type DashboardHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /reports/dashboard-stats. The payload shape depends
// on the caller's role.
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
