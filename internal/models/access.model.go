package models

import "time"

type User struct {
	BaseUUIDModel
	Code      string    `gorm:"type:varchar(64);not null;index" json:"code"`
	CreatedAt time.Time `gorm:"not null;index"                  json:"createdAt"`
	IsActive  bool      `gorm:"not null"                        json:"isActive"`
}

// AccessCode moves from unused to used exactly once.
type AccessCode struct {
	BaseUUIDModel
	Code      string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	IsUsed    bool       `gorm:"not null;index"                        json:"isUsed"`
	UsedAt    *time.Time `                                             json:"usedAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null;index"                        json:"createdAt"`
}

type AccessCodeStats struct {
	Total  int64 `json:"total"`
	Used   int64 `json:"used"`
	Unused int64 `json:"unused"`
}

type CreateAccessCodeRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type LoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// Flag is a named persisted boolean, e.g. the authenticated marker.
type Flag struct {
	Name      string    `gorm:"type:varchar(64);primaryKey" json:"name"`
	Value     bool      `gorm:"not null"                    json:"value"`
	UpdatedAt time.Time `gorm:"not null"                    json:"updatedAt"`
}
