package measurementController

import (
	"context"
	"errors"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/utils"
)

type MeasurementController struct {
	measurementRepo repositories.MeasurementRepository
	log             logger.Logger
	now             func() time.Time
}

func New(measurementRepo repositories.MeasurementRepository) *MeasurementController {
	return &MeasurementController{
		measurementRepo: measurementRepo,
		log:             logger.New("MeasurementController"),
		now:             time.Now,
	}
}

func (c *MeasurementController) CreateMeasurement(
	ctx context.Context,
	req CreateMeasurementRequest,
) (*Measurement, error) {
	log := c.log.Function("CreateMeasurement")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	date := c.now()
	if req.Date != nil {
		date = *req.Date
	}

	measurement := &Measurement{
		ClientID:         req.ClientID,
		BodyMeasurements: req.BodyMeasurements,
		Comment:          req.Comment,
		Date:             date.UTC(),
	}

	if err := c.measurementRepo.Create(ctx, measurement); err != nil {
		return nil, log.Err("failed to create measurement", err, "clientID", req.ClientID)
	}

	return measurement, nil
}

// GetMeasurementsByClient returns the client's history, most recent first.
func (c *MeasurementController) GetMeasurementsByClient(
	ctx context.Context,
	clientID string,
) ([]Measurement, error) {
	return c.measurementRepo.GetByClientID(ctx, clientID)
}

func (c *MeasurementController) GetMeasurement(ctx context.Context, id string) (*Measurement, error) {
	measurement, err := c.measurementRepo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return measurement, err
}

func (c *MeasurementController) GetLatestMeasurement(
	ctx context.Context,
	clientID string,
) (*Measurement, error) {
	measurement, err := c.measurementRepo.GetLatestByClientID(ctx, clientID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return measurement, err
}

func (c *MeasurementController) UpdateMeasurement(
	ctx context.Context,
	id string,
	patch MeasurementPatch,
) (*Measurement, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	if err := c.measurementRepo.Update(ctx, id, patch.Columns()); err != nil {
		return nil, c.log.Function("UpdateMeasurement").
			Err("failed to update measurement", err, "measurementID", id)
	}

	return c.measurementRepo.GetByID(ctx, id)
}
