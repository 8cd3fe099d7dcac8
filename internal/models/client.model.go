package models

import "time"

type Client struct {
	BaseUUIDModel
	LastName   string    `gorm:"type:varchar(255);not null" json:"lastName"`
	FirstNames string    `gorm:"type:varchar(255);not null" json:"firstNames"`
	Phone      string    `gorm:"type:varchar(64);not null"  json:"phone"`
	Email      *string   `gorm:"type:varchar(255)"          json:"email,omitempty"`
	Address    string    `gorm:"type:text"                  json:"address"`
	CreatedAt  time.Time `gorm:"not null;index"             json:"createdAt"`
}

type CreateClientRequest struct {
	LastName   string  `json:"lastName"   validate:"required"`
	FirstNames string  `json:"firstNames" validate:"required"`
	Phone      string  `json:"phone"      validate:"required"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Address    string  `json:"address"`
}

type ClientPatch struct {
	LastName   *string `json:"lastName"   validate:"omitempty,min=1"`
	FirstNames *string `json:"firstNames" validate:"omitempty,min=1"`
	Phone      *string `json:"phone"      validate:"omitempty,min=1"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Address    *string `json:"address"`
}

func (p ClientPatch) Columns() map[string]any {
	columns := map[string]any{}
	setIf(columns, "last_name", p.LastName)
	setIf(columns, "first_names", p.FirstNames)
	setIf(columns, "phone", p.Phone)
	setIf(columns, "email", p.Email)
	setIf(columns, "address", p.Address)
	return columns
}
