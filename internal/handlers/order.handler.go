package handlers

import (
	"coutupro/internal/app"
	alterationController "coutupro/internal/controllers/alterations"
	orderController "coutupro/internal/controllers/orders"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Handler
	controller           *orderController.OrderController
	alterationController *alterationController.AlterationController
}

func NewOrderHandler(app *app.App, router fiber.Router) *OrderHandler {
	return &OrderHandler{
		controller:           app.OrderController,
		alterationController: app.AlterationController,
		Handler:              newHandler(app, router, "order_handler"),
	}
}

func (h *OrderHandler) Register() {
	orders := h.router.Group("/orders", h.middleware.RequireSession)
	orders.Post("/", h.createOrder)
	orders.Get("/", h.getOrders)
	orders.Get("/:id", h.getOrder)
	orders.Patch("/:id", h.updateOrder)
	orders.Get("/:id/payments", h.getPayments)
	orders.Post("/:id/payments", h.addPayment)
	orders.Get("/:id/alterations", h.getAlterations)
	orders.Post("/:id/alterations", h.createAlteration)
}

type orderInput struct {
	CreateOrderRequest
	ExpectedDelivery string `json:"expectedDelivery"`
}

func (h *OrderHandler) createOrder(c *fiber.Ctx) error {
	var input orderInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "createOrder", "failed to parse order request", err)
	}

	request := input.CreateOrderRequest
	expected, err := h.parseDate("expectedDelivery", input.ExpectedDelivery)
	if err != nil {
		return h.fail(c, "createOrder", "invalid expected delivery", err)
	}
	request.ExpectedDelivery = expected

	order, err := h.controller.CreateOrder(c.Context(), request)
	if err != nil {
		return h.fail(c, "createOrder", "failed to create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "order": order})
}

func (h *OrderHandler) getOrders(c *fiber.Ctx) error {
	var (
		orders []Order
		err    error
	)

	if status := c.Query("status"); status != "" {
		orders, err = h.controller.GetOrdersByStatus(c.Context(), OrderStatus(status))
	} else {
		orders, err = h.controller.GetAllOrders(c.Context())
	}
	if err != nil {
		return h.fail(c, "getOrders", "failed to get orders", err)
	}

	return c.JSON(fiber.Map{"message": "success", "orders": orders})
}

func (h *OrderHandler) getOrder(c *fiber.Ctx) error {
	detail, err := h.controller.GetOrderDetail(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getOrder", "failed to get order", err)
	}

	return c.JSON(fiber.Map{
		"message":     "success",
		"order":       detail.Order,
		"measurement": detail.Measurement,
		"payments":    detail.Payments,
	})
}

type orderPatchInput struct {
	OrderPatch
	ExpectedDelivery *string `json:"expectedDelivery"`
}

func (h *OrderHandler) updateOrder(c *fiber.Ctx) error {
	var input orderPatchInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "updateOrder", "failed to parse order update", err)
	}

	patch := input.OrderPatch
	expected, err := h.parseOptionalDate("expectedDelivery", input.ExpectedDelivery)
	if err != nil {
		return h.fail(c, "updateOrder", "invalid expected delivery", err)
	}
	patch.ExpectedDelivery = expected

	order, err := h.controller.UpdateOrder(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "updateOrder", "failed to update order", err)
	}

	return c.JSON(fiber.Map{"message": "success", "order": order})
}

func (h *OrderHandler) getPayments(c *fiber.Ctx) error {
	payments, err := h.controller.GetPaymentsByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getPayments", "failed to get payments", err)
	}
	return c.JSON(fiber.Map{"message": "success", "payments": payments})
}

func (h *OrderHandler) addPayment(c *fiber.Ctx) error {
	var request AddPaymentRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, "addPayment", "failed to parse payment request", err)
	}

	order, payment, err := h.controller.AddPayment(c.Context(), c.Params("id"), request)
	if err != nil {
		return h.fail(c, "addPayment", "failed to add payment", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "order": order, "payment": payment})
}

func (h *OrderHandler) getAlterations(c *fiber.Ctx) error {
	alterations, err := h.alterationController.GetAlterationsByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getAlterations", "failed to get alterations", err)
	}
	return c.JSON(fiber.Map{"message": "success", "alterations": alterations})
}

type alterationInput struct {
	CreateAlterationRequest
	ExpectedDate string `json:"expectedDate"`
}

func (h *OrderHandler) createAlteration(c *fiber.Ctx) error {
	var input alterationInput
	if err := c.BodyParser(&input); err != nil {
		return h.badRequest(c, "createAlteration", "failed to parse alteration request", err)
	}

	request := input.CreateAlterationRequest
	request.OrderID = c.Params("id")

	expected, err := h.parseDate("expectedDate", input.ExpectedDate)
	if err != nil {
		return h.fail(c, "createAlteration", "invalid expected date", err)
	}
	request.ExpectedDate = expected

	alteration, err := h.alterationController.CreateAlteration(c.Context(), request)
	if err != nil {
		return h.fail(c, "createAlteration", "failed to create alteration", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "alteration": alteration})
}
