package repositories

import (
	"context"
	"time"

	"coutupro/internal/database"
	. "coutupro/internal/models"
)

type AlterationRepository interface {
	Create(ctx context.Context, alteration *Alteration) error
	CreateBatch(ctx context.Context, alterations []Alteration) error
	GetByID(ctx context.Context, id string) (*Alteration, error)
	GetAll(ctx context.Context) ([]Alteration, error)
	GetByOrderID(ctx context.Context, orderID string) ([]Alteration, error)
	GetOpenDueBefore(ctx context.Context, before time.Time) ([]Alteration, error)
	Update(ctx context.Context, id string, columns map[string]any) error
	Clear(ctx context.Context) (int64, error)
}

type alterationRepository struct {
	baseRepository
}

func NewAlteration(db database.DB) AlterationRepository {
	return &alterationRepository{newBase(db, "alterationRepository")}
}

func (r *alterationRepository) Create(ctx context.Context, alteration *Alteration) error {
	return createRecord(r.getDB(ctx), r.log, alteration)
}

func (r *alterationRepository) CreateBatch(ctx context.Context, alterations []Alteration) error {
	return createBatch(r.getDB(ctx), r.log, alterations)
}

func (r *alterationRepository) GetByID(ctx context.Context, id string) (*Alteration, error) {
	return findByID[Alteration](r.getDB(ctx), r.log, id)
}

func (r *alterationRepository) GetAll(ctx context.Context) ([]Alteration, error) {
	var alterations []Alteration
	if err := r.getDB(ctx).Order("created_at DESC").Find(&alterations).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get alterations", err)
	}
	return nonNil(alterations), nil
}

func (r *alterationRepository) GetByOrderID(
	ctx context.Context,
	orderID string,
) ([]Alteration, error) {
	var alterations []Alteration
	err := r.getDB(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&alterations).Error
	if err != nil {
		return nil, r.log.Function("GetByOrderID").
			Err("failed to get alterations by order", err, "orderID", orderID)
	}
	return nonNil(alterations), nil
}

func (r *alterationRepository) GetOpenDueBefore(
	ctx context.Context,
	before time.Time,
) ([]Alteration, error) {
	var alterations []Alteration
	err := r.getDB(ctx).
		Where("status <> ? AND expected_date <= ?", AlterationStatusDone, before.UTC()).
		Order("expected_date ASC").
		Find(&alterations).Error
	if err != nil {
		return nil, r.log.Function("GetOpenDueBefore").
			Err("failed to get due alterations", err, "before", before)
	}
	return nonNil(alterations), nil
}

func (r *alterationRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	return updateByID[Alteration](r.getDB(ctx), r.log, id, columns)
}

func (r *alterationRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Alteration](r.getDB(ctx), r.log)
}
