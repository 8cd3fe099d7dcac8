package repositories

import (
	"context"
	"time"

	"coutupro/internal/database"
	. "coutupro/internal/models"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	CreateBatch(ctx context.Context, orders []Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	GetByClientID(ctx context.Context, clientID string) ([]Order, error)
	GetByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	GetUndeliveredDueBefore(ctx context.Context, before time.Time) ([]Order, error)
	GetDeliveredWithBalance(ctx context.Context) ([]Order, error)
	CountByStatus(ctx context.Context, statuses ...OrderStatus) (int64, error)
	SumTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	Update(ctx context.Context, id string, columns map[string]any) error
	Clear(ctx context.Context) (int64, error)
}

type orderRepository struct {
	baseRepository
}

func NewOrder(db database.DB) OrderRepository {
	return &orderRepository{newBase(db, "orderRepository")}
}

func (r *orderRepository) Create(ctx context.Context, order *Order) error {
	return createRecord(r.getDB(ctx), r.log, order)
}

func (r *orderRepository) CreateBatch(ctx context.Context, orders []Order) error {
	return createBatch(r.getDB(ctx), r.log, orders)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	return findByID[Order](r.getDB(ctx), r.log, id)
}

func (r *orderRepository) GetAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.getDB(ctx).Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get orders", err)
	}
	return nonNil(orders), nil
}

func (r *orderRepository) GetByClientID(ctx context.Context, clientID string) ([]Order, error) {
	var orders []Order
	err := r.getDB(ctx).
		Where("client_id = ?", clientID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, r.log.Function("GetByClientID").
			Err("failed to get orders by client", err, "clientID", clientID)
	}
	return nonNil(orders), nil
}

func (r *orderRepository) GetByStatus(ctx context.Context, status OrderStatus) ([]Order, error) {
	var orders []Order
	err := r.getDB(ctx).
		Where("status = ?", status).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, r.log.Function("GetByStatus").
			Err("failed to get orders by status", err, "status", status)
	}
	return nonNil(orders), nil
}

func (r *orderRepository) GetUndeliveredDueBefore(
	ctx context.Context,
	before time.Time,
) ([]Order, error) {
	var orders []Order
	err := r.getDB(ctx).
		Where("status <> ? AND expected_delivery <= ?", OrderStatusDelivered, before.UTC()).
		Order("expected_delivery ASC").
		Find(&orders).Error
	if err != nil {
		return nil, r.log.Function("GetUndeliveredDueBefore").
			Err("failed to get due orders", err, "before", before)
	}
	return nonNil(orders), nil
}

// GetDeliveredWithBalance checks the sign of remaining on the decoded
// decimal; the column is text.
func (r *orderRepository) GetDeliveredWithBalance(ctx context.Context) ([]Order, error) {
	var delivered []Order
	err := r.getDB(ctx).
		Where("status = ?", OrderStatusDelivered).
		Order("order_date DESC").
		Find(&delivered).Error
	if err != nil {
		return nil, r.log.Function("GetDeliveredWithBalance").
			Err("failed to get delivered orders with balance", err)
	}

	orders := make([]Order, 0, len(delivered))
	for _, order := range delivered {
		if order.Remaining.IsPositive() {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (r *orderRepository) CountByStatus(
	ctx context.Context,
	statuses ...OrderStatus,
) (int64, error) {
	var total int64
	err := r.getDB(ctx).
		Model(&Order{}).
		Where("status IN ?", statuses).
		Count(&total).Error
	if err != nil {
		return 0, r.log.Function("CountByStatus").
			Err("failed to count orders by status", err, "statuses", statuses)
	}
	return total, nil
}

// SumTotalBetween sums order totals with from <= order_date < to.
func (r *orderRepository) SumTotalBetween(
	ctx context.Context,
	from, to time.Time,
) (decimal.Decimal, error) {
	var orders []Order
	err := r.getDB(ctx).
		Select("total_amount").
		Where("order_date >= ? AND order_date < ?", from.UTC(), to.UTC()).
		Find(&orders).Error
	if err != nil {
		return decimal.Zero, r.log.Function("SumTotalBetween").
			Err("failed to sum order totals", err, "from", from, "to", to)
	}

	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}
	return total, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	return updateByID[Order](r.getDB(ctx), r.log, id, columns)
}

func (r *orderRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Order](r.getDB(ctx), r.log)
}
