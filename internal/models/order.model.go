package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusAlteration OrderStatus = "Alteration"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusAlteration, OrderStatusDelivered:
		return true
	}
	return false
}

// InProgress reports whether the order still counts as open work.
func (s OrderStatus) InProgress() bool {
	return s == OrderStatusPending || s == OrderStatusInProgress
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPartial  PaymentStatus = "Partial"
	PaymentStatusComplete PaymentStatus = "Complete"
)

// PaymentStatusFor derives the payment status of an order from what is
// left to pay and what has been paid so far.
func PaymentStatusFor(remaining, paid decimal.Decimal) PaymentStatus {
	switch {
	case !remaining.IsPositive():
		return PaymentStatusComplete
	case paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

type Order struct {
	BaseUUIDModel
	ClientID         string          `gorm:"type:varchar(64);not null;index" json:"clientId"`
	MeasurementID    string          `gorm:"type:varchar(64);not null"       json:"measurementId"`
	Model            string          `gorm:"type:text;not null"              json:"model"`
	Photo            *string         `gorm:"type:text"                       json:"photo,omitempty"`
	OrderDate        time.Time       `gorm:"not null;index"                  json:"orderDate"`
	ExpectedDelivery time.Time       `gorm:"not null"                        json:"expectedDelivery"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount      decimal.Decimal `gorm:"type:text;not null"              json:"totalAmount"`
	Deposit          decimal.Decimal `gorm:"type:text;not null"              json:"deposit"`
	Remaining        decimal.Decimal `gorm:"type:text;not null"              json:"remaining"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);not null"       json:"paymentStatus"`
}

// Remaining is what is still owed on total after paid. It goes negative
// on overpayment.
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}

// ApplyPaid recomputes the derived balance fields from the sum of payments.
func (o *Order) ApplyPaid(paid decimal.Decimal) {
	o.Remaining = Remaining(o.TotalAmount, paid)
	o.PaymentStatus = PaymentStatusFor(o.Remaining, paid)
}

type CreateOrderRequest struct {
	ClientID         string          `json:"clientId"         validate:"required"`
	Model            string          `json:"model"            validate:"required"`
	Photo            *string         `json:"photo"`
	ExpectedDelivery time.Time       `json:"expectedDelivery" validate:"required"`
	TotalAmount      decimal.Decimal `json:"totalAmount"      validate:"gt=0"`
	Deposit          decimal.Decimal `json:"deposit"          validate:"gte=0"`
}

type OrderPatch struct {
	Model            *string          `json:"model"            validate:"omitempty,min=1"`
	Photo            *string          `json:"photo"`
	ExpectedDelivery *time.Time       `json:"expectedDelivery"`
	Status           *OrderStatus     `json:"status"`
	TotalAmount      *decimal.Decimal `json:"totalAmount"      validate:"omitempty,gt=0"`
}

// Columns excludes TotalAmount, which is written together with the
// recomputed balance.
func (p OrderPatch) Columns() map[string]any {
	columns := map[string]any{}
	setIf(columns, "model", p.Model)
	setIf(columns, "photo", p.Photo)
	setIf(columns, "expected_delivery", UTCPtr(p.ExpectedDelivery))
	setIf(columns, "status", p.Status)
	return columns
}
