package handlers

import (
	"strings"

	"coutupro/internal/app"
	clientController "coutupro/internal/controllers/clients"
	measurementController "coutupro/internal/controllers/measurements"
	orderController "coutupro/internal/controllers/orders"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Handler
	controller            *clientController.ClientController
	measurementController *measurementController.MeasurementController
	orderController       *orderController.OrderController
}

func NewClientHandler(app *app.App, router fiber.Router) *ClientHandler {
	return &ClientHandler{
		controller:            app.ClientController,
		measurementController: app.MeasurementController,
		orderController:       app.OrderController,
		Handler:               newHandler(app, router, "client_handler"),
	}
}

func (h *ClientHandler) Register() {
	clients := h.router.Group("/clients", h.middleware.RequireSession)
	clients.Get("/", h.getClients)
	clients.Post("/", h.createClient)
	clients.Get("/:id", h.getClient)
	clients.Patch("/:id", h.updateClient)
	clients.Delete("/:id", h.deleteClient)
	clients.Get("/:id/measurements", h.getMeasurements)
	clients.Post("/:id/measurements", h.createMeasurement)
	clients.Get("/:id/measurements/latest", h.getLatestMeasurement)
	clients.Get("/:id/orders", h.getOrders)
}

func (h *ClientHandler) getClients(c *fiber.Ctx) error {
	var (
		clients []Client
		err     error
	)

	if term := strings.TrimSpace(c.Query("q")); term != "" {
		clients, err = h.controller.SearchClients(c.Context(), term)
	} else {
		clients, err = h.controller.GetAllClients(c.Context())
	}
	if err != nil {
		return h.fail(c, "getClients", "failed to get clients", err)
	}

	return c.JSON(fiber.Map{"message": "success", "clients": clients})
}

func (h *ClientHandler) createClient(c *fiber.Ctx) error {
	var request CreateClientRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, "createClient", "failed to parse client request", err)
	}

	client, err := h.controller.CreateClient(c.Context(), request)
	if err != nil {
		return h.fail(c, "createClient", "failed to create client", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "client": client})
}

func (h *ClientHandler) getClient(c *fiber.Ctx) error {
	detail, err := h.controller.GetClientDetail(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getClient", "failed to get client", err)
	}

	return c.JSON(fiber.Map{
		"message":      "success",
		"client":       detail.Client,
		"measurements": detail.Measurements,
		"orders":       detail.Orders,
	})
}

func (h *ClientHandler) updateClient(c *fiber.Ctx) error {
	var patch ClientPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.badRequest(c, "updateClient", "failed to parse client update", err)
	}

	client, err := h.controller.UpdateClient(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "updateClient", "failed to update client", err)
	}

	return c.JSON(fiber.Map{"message": "success", "client": client})
}

func (h *ClientHandler) deleteClient(c *fiber.Ctx) error {
	if err := h.controller.DeleteClient(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "deleteClient", "failed to delete client", err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *ClientHandler) getMeasurements(c *fiber.Ctx) error {
	measurements, err := h.measurementController.GetMeasurementsByClient(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getMeasurements", "failed to get measurements", err)
	}
	return c.JSON(fiber.Map{"message": "success", "measurements": measurements})
}

type measurementInput struct {
	CreateMeasurementRequest
	Date *string `json:"date"`
}

func (h *ClientHandler) createMeasurement(c *fiber.Ctx) error {
	var input measurementInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "createMeasurement", "failed to parse measurement request", err)
	}

	request := input.CreateMeasurementRequest
	request.ClientID = c.Params("id")

	date, err := h.parseOptionalDate("date", input.Date)
	if err != nil {
		return h.fail(c, "createMeasurement", "invalid measurement date", err)
	}
	request.Date = date

	measurement, err := h.measurementController.CreateMeasurement(c.Context(), request)
	if err != nil {
		return h.fail(c, "createMeasurement", "failed to create measurement", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "measurement": measurement})
}

func (h *ClientHandler) getLatestMeasurement(c *fiber.Ctx) error {
	measurement, err := h.measurementController.GetLatestMeasurement(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getLatestMeasurement", "failed to get latest measurement", err)
	}
	if measurement == nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": ErrNoMeasurements.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "measurement": measurement})
}

func (h *ClientHandler) getOrders(c *fiber.Ctx) error {
	orders, err := h.orderController.GetOrdersByClient(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getOrders", "failed to get orders", err)
	}
	return c.JSON(fiber.Map{"message": "success", "orders": orders})
}
