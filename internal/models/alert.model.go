package models

import "time"

type AlertType string

const (
	AlertTypeDelivery   AlertType = "Delivery"
	AlertTypePayment    AlertType = "Payment"
	AlertTypeAlteration AlertType = "Alteration"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeDelivery, AlertTypePayment, AlertTypeAlteration:
		return true
	}
	return false
}

type Alert struct {
	BaseUUIDModel
	Type      AlertType `gorm:"type:varchar(20);not null;index" json:"type"`
	Message   string    `gorm:"type:text;not null"              json:"message"`
	OrderID   *string   `gorm:"type:varchar(64)"                json:"orderId,omitempty"`
	IsRead    bool      `gorm:"not null;index"                  json:"isRead"`
	CreatedAt time.Time `gorm:"not null;index"                  json:"createdAt"`
}

type CreateAlertRequest struct {
	Type    AlertType `json:"type"    validate:"required"`
	Message string    `json:"message" validate:"required"`
	OrderID *string   `json:"orderId"`
}
