package handlers

import (
	"github.com/campaign-tracker/backend/internal/http/dto"
	"github.com/campaign-tracker/backend/internal/middleware"
	"github.com/campaign-tracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              *zap.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.dashboardService.Get(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewDashboardResponse(d))
}
