package middleware

import (
	accessController "coutupro/internal/controllers/access"
	adminController "coutupro/internal/controllers/admin"
	"coutupro/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const MasterCodeHeader = "X-Master-Code"

type Middleware struct {
	session *accessController.Session
	admin   *adminController.AdminController
	log     logger.Logger
}

func New(
	session *accessController.Session,
	admin *adminController.AdminController,
) Middleware {
	return Middleware{
		session: session,
		admin:   admin,
		log:     logger.New("middleware"),
	}
}

// RequireSession rejects requests until an access code has been redeemed.
func (m Middleware) RequireSession(c *fiber.Ctx) error {
	if m.session == nil || !m.session.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}
	return c.Next()
}

// RequireMasterCode checks the master code header on every admin request.
func (m Middleware) RequireMasterCode(c *fiber.Ctx) error {
	if m.admin == nil || !m.admin.CheckMasterCode(c.Get(MasterCodeHeader)) {
		m.log.Function("RequireMasterCode").Warn("master code rejected", "path", c.Path(), "ip", c.IP())
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "invalid master code"})
	}
	return c.Next()
}
