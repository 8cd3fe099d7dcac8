package repositories

import (
	"context"

	"coutupro/internal/database"
	. "coutupro/internal/models"
)

type MeasurementRepository interface {
	Create(ctx context.Context, measurement *Measurement) error
	CreateBatch(ctx context.Context, measurements []Measurement) error
	GetByID(ctx context.Context, id string) (*Measurement, error)
	GetByClientID(ctx context.Context, clientID string) ([]Measurement, error)
	GetLatestByClientID(ctx context.Context, clientID string) (*Measurement, error)
	GetAll(ctx context.Context) ([]Measurement, error)
	Update(ctx context.Context, id string, columns map[string]any) error
	Clear(ctx context.Context) (int64, error)
}

type measurementRepository struct {
	baseRepository
}

func NewMeasurement(db database.DB) MeasurementRepository {
	return &measurementRepository{newBase(db, "measurementRepository")}
}

func (r *measurementRepository) Create(ctx context.Context, measurement *Measurement) error {
	return createRecord(r.getDB(ctx), r.log, measurement)
}

func (r *measurementRepository) CreateBatch(ctx context.Context, measurements []Measurement) error {
	return createBatch(r.getDB(ctx), r.log, measurements)
}

func (r *measurementRepository) GetByID(ctx context.Context, id string) (*Measurement, error) {
	return findByID[Measurement](r.getDB(ctx), r.log, id)
}

func (r *measurementRepository) GetByClientID(
	ctx context.Context,
	clientID string,
) ([]Measurement, error) {
	var measurements []Measurement
	err := r.getDB(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		Find(&measurements).Error
	if err != nil {
		return nil, r.log.Function("GetByClientID").
			Err("failed to get measurements by client", err, "clientID", clientID)
	}
	return nonNil(measurements), nil
}

func (r *measurementRepository) GetLatestByClientID(
	ctx context.Context,
	clientID string,
) (*Measurement, error) {
	var measurement Measurement
	err := r.getDB(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		First(&measurement).Error
	if err != nil {
		return nil, r.log.Function("GetLatestByClientID").
			Err("failed to get latest measurement", translate(err), "clientID", clientID)
	}
	return &measurement, nil
}

func (r *measurementRepository) GetAll(ctx context.Context) ([]Measurement, error) {
	var measurements []Measurement
	if err := r.getDB(ctx).Order("date DESC").Find(&measurements).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get measurements", err)
	}
	return nonNil(measurements), nil
}

func (r *measurementRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	return updateByID[Measurement](r.getDB(ctx), r.log, id, columns)
}

func (r *measurementRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Measurement](r.getDB(ctx), r.log)
}
