package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns combined dashboard data
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dashboard.DashboardFilter{
		Date: query.Get("date"), // format: YYYY-MM-DD, default: today
	}
	if d := query.Get("days"); d != "" {
		days, err := strconv.Atoi(d)
		if err != nil {
			response.BadRequest(w, "days must be a number", nil)
			return
		}
		filter.Days = days
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
