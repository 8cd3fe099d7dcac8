package handlers

import (
	"coutupro/internal/app"
	alertController "coutupro/internal/controllers/alerts"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	Handler
	controller *alertController.AlertController
}

func NewAlertHandler(app *app.App, router fiber.Router) *AlertHandler {
	return &AlertHandler{
		controller: app.AlertController,
		Handler:    newHandler(app, router, "alert_handler"),
	}
}

func (h *AlertHandler) Register() {
	alerts := h.router.Group("/alerts", h.middleware.RequireSession)
	alerts.Get("/", h.getAlerts)
	alerts.Post("/", h.createAlert)
	alerts.Get("/unread-count", h.getUnreadCount)
	alerts.Post("/read-all", h.markAllRead)
	alerts.Post("/:id/read", h.markRead)
}

func (h *AlertHandler) getAlerts(c *fiber.Ctx) error {
	alerts, err := h.controller.GetAllAlerts(c.Context())
	if err != nil {
		return h.fail(c, "getAlerts", "failed to get alerts", err)
	}
	return c.JSON(fiber.Map{"message": "success", "alerts": alerts})
}

func (h *AlertHandler) createAlert(c *fiber.Ctx) error {
	var request CreateAlertRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, "createAlert", "failed to parse alert request", err)
	}

	alert, err := h.controller.CreateAlert(c.Context(), request)
	if err != nil {
		return h.fail(c, "createAlert", "failed to create alert", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "alert": alert})
}

func (h *AlertHandler) getUnreadCount(c *fiber.Ctx) error {
	count, err := h.controller.GetUnreadAlertCount(c.Context())
	if err != nil {
		return h.fail(c, "getUnreadCount", "failed to count unread alerts", err)
	}
	return c.JSON(fiber.Map{"message": "success", "count": count})
}

func (h *AlertHandler) markRead(c *fiber.Ctx) error {
	if err := h.controller.MarkAlertAsRead(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "markRead", "failed to mark alert as read", err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AlertHandler) markAllRead(c *fiber.Ctx) error {
	updated, err := h.controller.MarkAllAlertsAsRead(c.Context())
	if err != nil {
		return h.fail(c, "markAllRead", "failed to mark alerts as read", err)
	}
	return c.JSON(fiber.Map{"message": "success", "updated": updated})
}
