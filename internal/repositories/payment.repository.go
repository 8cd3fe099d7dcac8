package repositories

import (
	"context"

	"coutupro/internal/database"
	. "coutupro/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentRepository is append-only: there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	CreateBatch(ctx context.Context, payments []Payment) error
	GetByOrderID(ctx context.Context, orderID string) ([]Payment, error)
	SumByOrderID(ctx context.Context, orderID string) (decimal.Decimal, error)
	GetAll(ctx context.Context) ([]Payment, error)
	Clear(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	baseRepository
}

func NewPayment(db database.DB) PaymentRepository {
	return &paymentRepository{newBase(db, "paymentRepository")}
}

func (r *paymentRepository) Create(ctx context.Context, payment *Payment) error {
	return createRecord(r.getDB(ctx), r.log, payment)
}

func (r *paymentRepository) CreateBatch(ctx context.Context, payments []Payment) error {
	return createBatch(r.getDB(ctx), r.log, payments)
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) ([]Payment, error) {
	var payments []Payment
	err := r.getDB(ctx).
		Where("order_id = ?", orderID).
		Order("date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, r.log.Function("GetByOrderID").
			Err("failed to get payments by order", err, "orderID", orderID)
	}
	return nonNil(payments), nil
}

// SumByOrderID totals the order's payments exactly.
func (r *paymentRepository) SumByOrderID(ctx context.Context, orderID string) (decimal.Decimal, error) {
	payments, err := r.GetByOrderID(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumPayments(payments), nil
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := r.getDB(ctx).Order("date ASC").Find(&payments).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get payments", err)
	}
	return nonNil(payments), nil
}

func (r *paymentRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Payment](r.getDB(ctx), r.log)
}
