package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "Deposit"
	PaymentTypeBalance PaymentType = "Balance"
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeDeposit || t == PaymentTypeBalance
}

// Payment rows are never updated or deleted.
type Payment struct {
	BaseUUIDModel
	OrderID string          `gorm:"type:varchar(64);not null;index" json:"orderId"`
	Amount  decimal.Decimal `gorm:"type:text;not null"              json:"amount"`
	Type    PaymentType     `gorm:"type:varchar(20);not null"       json:"type"`
	Date    time.Time       `gorm:"not null"                        json:"date"`
}

// SumPayments totals amounts exactly, whatever their order.
func SumPayments(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}
	return total
}

type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Type   PaymentType     `json:"type"`
}
