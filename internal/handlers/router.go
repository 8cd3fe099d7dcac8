package handlers

import (
	"errors"
	"time"

	"coutupro/config"
	"coutupro/internal/app"
	"coutupro/internal/handlers/middleware"
	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
	dates      *utils.DateValidator
}

func newHandler(app *app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
		dates:      utils.NewDateValidator(time.Local),
	}
}

// NewServer builds the fiber app with every route registered.
func NewServer(app *app.App) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:      "coutupro",
		Immutable:    true,
		BodyLimit:    32 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	if err := Router(server, app); err != nil {
		logger.New("handlers").Function("NewServer").Er("failed to register routes", err)
	}

	return server
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(app, api).Register()
	NewAdminHandler(app, api).Register()

	NewClientHandler(app, api).Register()
	NewMeasurementHandler(app, api).Register()
	NewOrderHandler(app, api).Register()
	NewAlterationHandler(app, api).Register()
	NewAlertHandler(app, api).Register()
	NewDashboardHandler(app, api).Register()
	NewBackupHandler(app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", app.Middleware.RequireSession, websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":     "ok",
			"environment": config.Environment,
			"timestamp":   time.Now().UTC(),
		})
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidBackup):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, ErrNoMeasurements):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h Handler) fail(c *fiber.Ctx, function, message string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		h.log.Function(function).Er(message, err)
		return c.Status(status).JSON(fiber.Map{"message": message})
	}

	h.log.Function(function).Debug(message, "error", err, "status", status)
	return c.Status(status).JSON(fiber.Map{"message": message, "error": err.Error()})
}

func (h Handler) badRequest(c *fiber.Ctx, function, message string, err error) error {
	h.log.Function(function).Debug(message, "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

func (h Handler) parseDate(field, value string) (time.Time, error) {
	parsed, err := h.dates.Parse(value)
	if err != nil {
		return time.Time{}, utils.Invalid("%s: %v", field, err)
	}
	return parsed, nil
}

func (h Handler) parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := h.dates.ParseOptional(*value)
	if err != nil {
		return nil, utils.Invalid("%s: %v", field, err)
	}
	return parsed, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}
