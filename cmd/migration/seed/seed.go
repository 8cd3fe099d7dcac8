package seed

import (
	"time"

	"coutupro/config"
	"coutupro/internal/logger"
	. "coutupro/internal/models"

	"gorm.io/gorm"
)

const DemoAccessCode = "DEMO2025"

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data", "environment", config.Environment)

	now := time.Now().UTC()

	var existingCode AccessCode
	if err := db.First(&existingCode, "code = ?", DemoAccessCode).Error; err == nil {
		log.Info("Access code already exists", "code", DemoAccessCode)
	} else {
		code := AccessCode{Code: DemoAccessCode, CreatedAt: now}
		log.Info("Seeding access code", "code", DemoAccessCode)
		if err := db.Create(&code).Error; err != nil {
			log.Er("failed to create access code", err, "code", DemoAccessCode)
		}
	}

	client := Client{
		LastName:   "Doe",
		FirstNames: "Jane",
		Phone:      "0600000000",
		Email:      stringPtr("jane.doe@example.com"),
		Address:    "12 rue des Couturiers",
		CreatedAt:  now,
	}

	var existingClient Client
	if err := db.First(&existingClient, "last_name = ? AND first_names = ?", client.LastName, client.FirstNames).Error; err == nil {
		log.Info("Client already exists", "client", existingClient.ID)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		log.Info("Seeding client", "lastName", client.LastName)
		if err := tx.Create(&client).Error; err != nil {
			return log.Err("failed to create client", err)
		}

		measurement := Measurement{
			ClientID: client.ID,
			BodyMeasurements: BodyMeasurements{
				Back:          38,
				SleeveLength:  60,
				SleeveRound:   28,
				DressLength:   105,
				SkirtLength:   62,
				TrouserLength: 100,
				WaistLength:   42,
				BustHeight:    25,
				Neck:          36,
				ShoulderWidth: 39,
				Bust:          92,
				UnderBust:     78,
				Waist:         72,
				Hips:          98,
				HipHeight:     20,
				Belt:          74,
				TrouserHem:    22,
				Knee:          38,
			},
			Comment: stringPtr("Seed measurements"),
			Date:    now,
		}
		if err := tx.Create(&measurement).Error; err != nil {
			return log.Err("failed to create measurement", err)
		}

		return nil
	})
}
