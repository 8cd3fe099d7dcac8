package handlers

import (
	"coutupro/internal/app"
	adminController "coutupro/internal/controllers/admin"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app *app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		controller: app.AdminController,
		Handler:    newHandler(app, router, "admin_handler"),
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireMasterCode)
	admin.Get("/codes", h.getAccessCodes)
	admin.Post("/codes", h.createAccessCode)
	admin.Post("/codes/generate", h.generateAccessCode)
	admin.Get("/codes/stats", h.getAccessCodeStats)
}

func (h *AdminHandler) getAccessCodes(c *fiber.Ctx) error {
	codes, err := h.controller.GetAllAccessCodes(c.Context())
	if err != nil {
		return h.fail(c, "getAccessCodes", "failed to get access codes", err)
	}
	return c.JSON(fiber.Map{"message": "success", "codes": codes})
}

func (h *AdminHandler) createAccessCode(c *fiber.Ctx) error {
	var request CreateAccessCodeRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, "createAccessCode", "failed to parse access code request", err)
	}

	code, err := h.controller.CreateAccessCode(c.Context(), request)
	if err != nil {
		return h.fail(c, "createAccessCode", "failed to create access code", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "code": code})
}

func (h *AdminHandler) generateAccessCode(c *fiber.Ctx) error {
	code, err := h.controller.GenerateAccessCode(c.Context())
	if err != nil {
		return h.fail(c, "generateAccessCode", "failed to generate access code", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "code": code})
}

func (h *AdminHandler) getAccessCodeStats(c *fiber.Ctx) error {
	stats, err := h.controller.GetAccessCodeStats(c.Context())
	if err != nil {
		return h.fail(c, "getAccessCodeStats", "failed to get access code stats", err)
	}
	return c.JSON(fiber.Map{"message": "success", "stats": stats})
}
