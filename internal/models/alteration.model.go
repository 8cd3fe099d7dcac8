package models

import "time"

type AlterationStatus string

const (
	AlterationStatusPending    AlterationStatus = "Pending"
	AlterationStatusInProgress AlterationStatus = "InProgress"
	AlterationStatusDone       AlterationStatus = "Done"
)

func (s AlterationStatus) Valid() bool {
	switch s {
	case AlterationStatusPending, AlterationStatusInProgress, AlterationStatusDone:
		return true
	}
	return false
}

type Alteration struct {
	BaseUUIDModel
	OrderID      string           `gorm:"type:varchar(64);not null;index" json:"orderId"`
	Description  string           `gorm:"type:text;not null"              json:"description"`
	ExpectedDate time.Time        `gorm:"not null"                        json:"expectedDate"`
	Status       AlterationStatus `gorm:"type:varchar(20);not null"       json:"status"`
	CreatedAt    time.Time        `gorm:"not null;index"                  json:"createdAt"`
}

type CreateAlterationRequest struct {
	OrderID      string    `json:"orderId"      validate:"required"`
	Description  string    `json:"description"  validate:"required"`
	ExpectedDate time.Time `json:"expectedDate" validate:"required"`
}

type AlterationPatch struct {
	Description  *string           `json:"description"  validate:"omitempty,min=1"`
	ExpectedDate *time.Time        `json:"expectedDate"`
	Status       *AlterationStatus `json:"status"`
}

func (p AlterationPatch) Columns() map[string]any {
	columns := map[string]any{}
	setIf(columns, "description", p.Description)
	setIf(columns, "expected_date", UTCPtr(p.ExpectedDate))
	setIf(columns, "status", p.Status)
	return columns
}
