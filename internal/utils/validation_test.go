package utils

import (
	"testing"
	"time"

	. "coutupro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	email := "bad"

	tests := []struct {
		name      string
		value     any
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid client",
			value: CreateClientRequest{LastName: "Doe", FirstNames: "Jane", Phone: "06"},
		},
		{
			name:      "missing last name",
			value:     CreateClientRequest{FirstNames: "Jane", Phone: "06"},
			wantErr:   true,
			wantField: "LastName (required)",
		},
		{
			name:      "bad email",
			value:     CreateClientRequest{LastName: "Doe", FirstNames: "Jane", Phone: "06", Email: &email},
			wantErr:   true,
			wantField: "Email (email)",
		},
		{
			name:  "cent payment",
			value: AddPaymentRequest{Amount: decimal.RequireFromString("0.01"), Type: PaymentTypeBalance},
		},
		{
			name:      "negative deposit",
			value:     CreateOrderRequest{ClientID: "c1", Model: "Robe", ExpectedDelivery: time.Now(), TotalAmount: decimal.NewFromInt(10), Deposit: decimal.NewFromInt(-1)},
			wantErr:   true,
			wantField: "Deposit (gte)",
		},
		{
			name:      "non-positive payment",
			value:     AddPaymentRequest{Amount: decimal.Zero},
			wantErr:   true,
			wantField: "Amount (gt)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("unknown order status %q", "Lost")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `"Lost"`)
}
