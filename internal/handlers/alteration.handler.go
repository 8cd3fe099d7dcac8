package handlers

import (
	"coutupro/internal/app"
	alterationController "coutupro/internal/controllers/alterations"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AlterationHandler struct {
	Handler
	controller *alterationController.AlterationController
}

func NewAlterationHandler(app *app.App, router fiber.Router) *AlterationHandler {
	return &AlterationHandler{
		controller: app.AlterationController,
		Handler:    newHandler(app, router, "alteration_handler"),
	}
}

func (h *AlterationHandler) Register() {
	alterations := h.router.Group("/alterations", h.middleware.RequireSession)
	alterations.Get("/", h.getAlterations)
	alterations.Patch("/:id", h.updateAlteration)
}

func (h *AlterationHandler) getAlterations(c *fiber.Ctx) error {
	alterations, err := h.controller.GetAllAlterations(c.Context())
	if err != nil {
		return h.fail(c, "getAlterations", "failed to get alterations", err)
	}
	return c.JSON(fiber.Map{"message": "success", "alterations": alterations})
}

type alterationPatchInput struct {
	AlterationPatch
	ExpectedDate *string `json:"expectedDate"`
}

func (h *AlterationHandler) updateAlteration(c *fiber.Ctx) error {
	var input alterationPatchInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "updateAlteration", "failed to parse alteration update", err)
	}

	patch := input.AlterationPatch
	expected, err := h.parseOptionalDate("expectedDate", input.ExpectedDate)
	if err != nil {
		return h.fail(c, "updateAlteration", "invalid expected date", err)
	}
	patch.ExpectedDate = expected

	alteration, err := h.controller.UpdateAlteration(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "updateAlteration", "failed to update alteration", err)
	}

	return c.JSON(fiber.Map{"message": "success", "alteration": alteration})
}
