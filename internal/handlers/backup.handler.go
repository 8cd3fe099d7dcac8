package handlers

import (
	"fmt"
	"time"

	"coutupro/internal/app"
	backupController "coutupro/internal/controllers/backup"

	"github.com/gofiber/fiber/v2"
)

type BackupHandler struct {
	Handler
	controller *backupController.BackupController
}

func NewBackupHandler(app *app.App, router fiber.Router) *BackupHandler {
	return &BackupHandler{
		controller: app.BackupController,
		Handler:    newHandler(app, router, "backup_handler"),
	}
}

func (h *BackupHandler) Register() {
	backup := h.router.Group("/backup", h.middleware.RequireSession)
	backup.Get("/", h.exportBackup)
	backup.Post("/import", h.importBackup)
	backup.Delete("/", h.clearAllData)
}

func (h *BackupHandler) exportBackup(c *fiber.Ctx) error {
	data, err := h.controller.Export(c.Context())
	if err != nil {
		return h.fail(c, "exportBackup", "failed to export backup", err)
	}

	filename := fmt.Sprintf("coutupro-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func (h *BackupHandler) importBackup(c *fiber.Ctx) error {
	summary, err := h.controller.Import(c.Context(), c.Body())
	if err != nil {
		return h.fail(c, "importBackup", "failed to import backup", err)
	}
	return c.JSON(fiber.Map{"message": "success", "imported": summary})
}

func (h *BackupHandler) clearAllData(c *fiber.Ctx) error {
	if err := h.controller.ClearAllData(c.Context()); err != nil {
		return h.fail(c, "clearAllData", "failed to clear data", err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}
