package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"docflow/internal/export"
	"docflow/internal/service"
)

// DashboardHandler serves role-scoped reporting endpoints.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Get returns the acting user's dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboardSvc.GetDashboard(c.Request.Context(), actorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

// Export returns the acting user's dashboard as an Excel workbook.
func (h *DashboardHandler) Export(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboardSvc.GetDashboard(c.Request.Context(), actorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := export.WriteDashboardWorkbook(dashboard)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("dashboard-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
