package initialize

import (
	"errors"
	"time"

	"coutupro/config"
	accessController "coutupro/internal/controllers/access"
	"coutupro/internal/logger"
	. "coutupro/internal/models"

	"gorm.io/gorm"
)

// InitializeTables writes the rows every installation expects, leaving
// existing values untouched.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	var flag Flag
	err := db.First(&flag, "name = ?", accessController.AuthenticatedFlag).Error
	switch {
	case err == nil:
		log.Info("Session flag already present", "value", flag.Value)
	case errors.Is(err, gorm.ErrRecordNotFound):
		flag = Flag{
			Name:      accessController.AuthenticatedFlag,
			Value:     false,
			UpdatedAt: time.Now().UTC(),
		}
		if err := db.Create(&flag).Error; err != nil {
			return log.Err("failed to create session flag", err)
		}
	default:
		return log.Err("failed to read session flag", err)
	}

	if config.AdminSecretHash == "" {
		log.Warn("ADMIN_SECRET_HASH is empty, admin routes are disabled")
	}

	log.Info("Table initialization complete")
	return nil
}
