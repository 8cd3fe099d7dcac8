package repositories

import (
	"context"

	"coutupro/internal/database"
	. "coutupro/internal/models"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	CreateBatch(ctx context.Context, alerts []Alert) error
	GetAll(ctx context.Context) ([]Alert, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	ExistsUnread(ctx context.Context, alertType AlertType, orderID *string, message string) (bool, error)
	Clear(ctx context.Context) (int64, error)
}

type alertRepository struct {
	baseRepository
}

func NewAlert(db database.DB) AlertRepository {
	return &alertRepository{newBase(db, "alertRepository")}
}

func (r *alertRepository) Create(ctx context.Context, alert *Alert) error {
	return createRecord(r.getDB(ctx), r.log, alert)
}

func (r *alertRepository) CreateBatch(ctx context.Context, alerts []Alert) error {
	return createBatch(r.getDB(ctx), r.log, alerts)
}

func (r *alertRepository) GetAll(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := r.getDB(ctx).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get alerts", err)
	}
	return nonNil(alerts), nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id string) error {
	return updateByID[Alert](r.getDB(ctx), r.log, id, map[string]any{"is_read": true})
}

func (r *alertRepository) MarkAllRead(ctx context.Context) (int64, error) {
	result := r.getDB(ctx).
		Model(&Alert{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, r.log.Function("MarkAllRead").Err("failed to mark alerts as read", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *alertRepository) CountUnread(ctx context.Context) (int64, error) {
	var total int64
	if err := r.getDB(ctx).Model(&Alert{}).Where("is_read = ?", false).Count(&total).Error; err != nil {
		return 0, r.log.Function("CountUnread").Err("failed to count unread alerts", err)
	}
	return total, nil
}

func (r *alertRepository) ExistsUnread(
	ctx context.Context,
	alertType AlertType,
	orderID *string,
	message string,
) (bool, error) {
	query := r.getDB(ctx).
		Model(&Alert{}).
		Where("is_read = ? AND type = ? AND message = ?", false, alertType, message)
	if orderID != nil {
		query = query.Where("order_id = ?", *orderID)
	} else {
		query = query.Where("order_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, r.log.Function("ExistsUnread").
			Err("failed to look up alert", err, "type", alertType)
	}
	return total > 0, nil
}

func (r *alertRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Alert](r.getDB(ctx), r.log)
}
