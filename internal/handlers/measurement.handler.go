package handlers

import (
	"coutupro/internal/app"
	measurementController "coutupro/internal/controllers/measurements"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MeasurementHandler struct {
	Handler
	controller *measurementController.MeasurementController
}

func NewMeasurementHandler(app *app.App, router fiber.Router) *MeasurementHandler {
	return &MeasurementHandler{
		controller: app.MeasurementController,
		Handler:    newHandler(app, router, "measurement_handler"),
	}
}

func (h *MeasurementHandler) Register() {
	measurements := h.router.Group("/measurements", h.middleware.RequireSession)
	measurements.Get("/:id", h.getMeasurement)
	measurements.Patch("/:id", h.updateMeasurement)
}

func (h *MeasurementHandler) getMeasurement(c *fiber.Ctx) error {
	measurement, err := h.controller.GetMeasurement(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getMeasurement", "failed to get measurement", err)
	}
	if measurement == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "measurement not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "measurement": measurement})
}

type measurementPatchInput struct {
	MeasurementPatch
	Date *string `json:"date"`
}

func (h *MeasurementHandler) updateMeasurement(c *fiber.Ctx) error {
	var input measurementPatchInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "updateMeasurement", "failed to parse measurement update", err)
	}

	patch := input.MeasurementPatch
	date, err := h.parseOptionalDate("date", input.Date)
	if err != nil {
		return h.fail(c, "updateMeasurement", "invalid measurement date", err)
	}
	patch.Date = date

	measurement, err := h.controller.UpdateMeasurement(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "updateMeasurement", "failed to update measurement", err)
	}

	return c.JSON(fiber.Map{"message": "success", "measurement": measurement})
}
