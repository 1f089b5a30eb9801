package http

import (
	"net/http"

	"github.com/netreply/attendance-backend-go/internal/handler/http/response"
	dashboardservice "github.com/netreply/attendance-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService *dashboardservice.DashboardService
}

func NewDashboardHandler(dashboardService *dashboardservice.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Summary implements DashboardHandler.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	summary, err := h.dashboardService.Summary(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
