package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusFor(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		paid      string
		want      PaymentStatus
	}{
		{name: "nothing paid", remaining: "100", paid: "0", want: PaymentStatusPending},
		{name: "part paid", remaining: "60", paid: "40", want: PaymentStatusPartial},
		{name: "cent paid", remaining: "99.99", paid: "0.01", want: PaymentStatusPartial},
		{name: "cent owed", remaining: "0.01", paid: "99.99", want: PaymentStatusPartial},
		{name: "settled", remaining: "0", paid: "100", want: PaymentStatusComplete},
		{name: "overpaid", remaining: "-10", paid: "110", want: PaymentStatusComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentStatusFor(decimal.RequireFromString(tt.remaining), decimal.RequireFromString(tt.paid)))
		})
	}
}

func TestApplyPaid(t *testing.T) {
	order := Order{TotalAmount: decimal.NewFromInt(150)}

	order.ApplyPaid(decimal.NewFromInt(50))
	assert.Equal(t, "100", order.Remaining.String())
	assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)

	order.ApplyPaid(decimal.NewFromInt(150))
	assert.True(t, order.Remaining.IsZero())
	assert.Equal(t, PaymentStatusComplete, order.PaymentStatus)

	assert.Equal(t, "-5", Remaining(decimal.NewFromInt(10), decimal.NewFromInt(15)).String())
}

func TestSumPayments(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.RequireFromString("50.10")},
		{Amount: decimal.RequireFromString("49.91")},
	}

	assert.True(t, SumPayments(nil).IsZero())
	assert.Equal(t, "100.01", SumPayments(payments).String())

	order := Order{TotalAmount: decimal.RequireFromString("100.01")}
	order.ApplyPaid(SumPayments(payments))
	assert.True(t, order.Remaining.IsZero())
	assert.Equal(t, PaymentStatusComplete, order.PaymentStatus)
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusAlteration.Valid())
	assert.False(t, OrderStatus("Lost").Valid())
	assert.True(t, OrderStatusPending.InProgress())
	assert.True(t, OrderStatusInProgress.InProgress())
	assert.False(t, OrderStatusDelivered.InProgress())
}

func TestOrderPatch_Columns(t *testing.T) {
	local := time.Date(2025, 7, 1, 12, 0, 0, 0, time.FixedZone("CEST", 7200))
	status := OrderStatusDelivered
	total := decimal.NewFromInt(300)

	columns := OrderPatch{ExpectedDelivery: &local, Status: &status, TotalAmount: &total}.Columns()

	assert.Len(t, columns, 2)
	assert.Equal(t, OrderStatusDelivered, columns["status"])
	delivery, ok := columns["expected_delivery"].(time.Time)
	assert.True(t, ok)
	assert.Equal(t, time.UTC, delivery.Location())
	assert.Equal(t, 10, delivery.Hour())
	assert.NotContains(t, columns, "total_amount")
}

func TestBaseUUIDModel_BeforeCreate(t *testing.T) {
	fresh := BaseUUIDModel{}
	assert.NoError(t, fresh.BeforeCreate(nil))
	assert.Len(t, fresh.ID, 36)

	restored := BaseUUIDModel{ID: "kept-id"}
	assert.NoError(t, restored.BeforeCreate(nil))
	assert.Equal(t, "kept-id", restored.ID)
}
