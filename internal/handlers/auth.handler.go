package handlers

import (
	"coutupro/internal/app"
	accessController "coutupro/internal/controllers/access"
	. "coutupro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	session    *accessController.Session
	controller *accessController.AccessController
}

func NewAuthHandler(app *app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		session:    app.Session,
		controller: app.AccessController,
		Handler:    newHandler(app, router, "auth_handler"),
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/session", h.getSession)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, "login", "failed to parse login request", err)
	}

	user, err := h.session.Login(c.Context(), request.Code)
	if err != nil {
		return h.fail(c, "login", "failed to log in", err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid or already used access code"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.Context()); err != nil {
		return h.fail(c, "logout", "failed to log out", err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) getSession(c *fiber.Ctx) error {
	user, err := h.controller.GetCurrentUser(c.Context())
	if err != nil {
		return h.fail(c, "getSession", "failed to get current user", err)
	}

	return c.JSON(fiber.Map{
		"message":       "success",
		"authenticated": h.session.Authenticated(),
		"user":          user,
	})
}
