package handlers

import (
	"coutupro/internal/app"
	dashboardController "coutupro/internal/controllers/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	controller *dashboardController.DashboardController
}

func NewDashboardHandler(app *app.App, router fiber.Router) *DashboardHandler {
	return &DashboardHandler{
		controller: app.DashboardController,
		Handler:    newHandler(app, router, "dashboard_handler"),
	}
}

func (h *DashboardHandler) Register() {
	h.router.Get("/dashboard", h.middleware.RequireSession, h.getStats)
}

func (h *DashboardHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.controller.GetStats(c.Context())
	if err != nil {
		return h.fail(c, "getStats", "failed to get dashboard stats", err)
	}
	return c.JSON(fiber.Map{"message": "success", "stats": stats})
}
