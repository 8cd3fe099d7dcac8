package models

import "time"

// BodyMeasurements are in centimetres.
type BodyMeasurements struct {
	Back            float64 `gorm:"not null;default:0" json:"back" validate:"gte=0"`
	SleeveLength    float64 `gorm:"not null;default:0" json:"sleeveLength" validate:"gte=0"`
	SleeveRound     float64 `gorm:"not null;default:0" json:"sleeveRound" validate:"gte=0"`
	DressLength     float64 `gorm:"not null;default:0" json:"dressLength" validate:"gte=0"`
	SkirtLength     float64 `gorm:"not null;default:0" json:"skirtLength" validate:"gte=0"`
	TrouserLength   float64 `gorm:"not null;default:0" json:"trouserLength" validate:"gte=0"`
	WaistLength     float64 `gorm:"not null;default:0" json:"waistLength" validate:"gte=0"`
	BustHeight      float64 `gorm:"not null;default:0" json:"bustHeight" validate:"gte=0"`
	UnderBustHeight float64 `gorm:"not null;default:0" json:"underBustHeight" validate:"gte=0"`
	Neck            float64 `gorm:"not null;default:0" json:"neck" validate:"gte=0"`
	ShoulderWidth   float64 `gorm:"not null;default:0" json:"shoulderWidth" validate:"gte=0"`
	Bust            float64 `gorm:"not null;default:0" json:"bust" validate:"gte=0"`
	UnderBust       float64 `gorm:"not null;default:0" json:"underBust" validate:"gte=0"`
	Waist           float64 `gorm:"not null;default:0" json:"waist" validate:"gte=0"`
	Hips            float64 `gorm:"not null;default:0" json:"hips" validate:"gte=0"`
	HipHeight       float64 `gorm:"not null;default:0" json:"hipHeight" validate:"gte=0"`
	Belt            float64 `gorm:"not null;default:0" json:"belt" validate:"gte=0"`
	TrouserHem      float64 `gorm:"not null;default:0" json:"trouserHem" validate:"gte=0"`
	Knee            float64 `gorm:"not null;default:0" json:"knee" validate:"gte=0"`
}

type Measurement struct {
	BaseUUIDModel
	ClientID string `gorm:"type:varchar(64);not null;index" json:"clientId"`
	BodyMeasurements
	Comment *string   `gorm:"type:text"      json:"comment,omitempty"`
	Date    time.Time `gorm:"not null;index" json:"date"`
}

type CreateMeasurementRequest struct {
	ClientID string `json:"clientId" validate:"required"`
	BodyMeasurements
	Comment *string    `json:"comment"`
	Date    *time.Time `json:"date"`
}

type MeasurementPatch struct {
	Back            *float64   `json:"back"            validate:"omitempty,gte=0"`
	SleeveLength    *float64   `json:"sleeveLength"    validate:"omitempty,gte=0"`
	SleeveRound     *float64   `json:"sleeveRound"     validate:"omitempty,gte=0"`
	DressLength     *float64   `json:"dressLength"     validate:"omitempty,gte=0"`
	SkirtLength     *float64   `json:"skirtLength"     validate:"omitempty,gte=0"`
	TrouserLength   *float64   `json:"trouserLength"   validate:"omitempty,gte=0"`
	WaistLength     *float64   `json:"waistLength"     validate:"omitempty,gte=0"`
	BustHeight      *float64   `json:"bustHeight"      validate:"omitempty,gte=0"`
	UnderBustHeight *float64   `json:"underBustHeight" validate:"omitempty,gte=0"`
	Neck            *float64   `json:"neck"            validate:"omitempty,gte=0"`
	ShoulderWidth   *float64   `json:"shoulderWidth"   validate:"omitempty,gte=0"`
	Bust            *float64   `json:"bust"            validate:"omitempty,gte=0"`
	UnderBust       *float64   `json:"underBust"       validate:"omitempty,gte=0"`
	Waist           *float64   `json:"waist"           validate:"omitempty,gte=0"`
	Hips            *float64   `json:"hips"            validate:"omitempty,gte=0"`
	HipHeight       *float64   `json:"hipHeight"       validate:"omitempty,gte=0"`
	Belt            *float64   `json:"belt"            validate:"omitempty,gte=0"`
	TrouserHem      *float64   `json:"trouserHem"      validate:"omitempty,gte=0"`
	Knee            *float64   `json:"knee"            validate:"omitempty,gte=0"`
	Comment         *string    `json:"comment"`
	Date            *time.Time `json:"date"`
}

func (p MeasurementPatch) Columns() map[string]any {
	columns := map[string]any{}
	setIf(columns, "back", p.Back)
	setIf(columns, "sleeve_length", p.SleeveLength)
	setIf(columns, "sleeve_round", p.SleeveRound)
	setIf(columns, "dress_length", p.DressLength)
	setIf(columns, "skirt_length", p.SkirtLength)
	setIf(columns, "trouser_length", p.TrouserLength)
	setIf(columns, "waist_length", p.WaistLength)
	setIf(columns, "bust_height", p.BustHeight)
	setIf(columns, "under_bust_height", p.UnderBustHeight)
	setIf(columns, "neck", p.Neck)
	setIf(columns, "shoulder_width", p.ShoulderWidth)
	setIf(columns, "bust", p.Bust)
	setIf(columns, "under_bust", p.UnderBust)
	setIf(columns, "waist", p.Waist)
	setIf(columns, "hips", p.Hips)
	setIf(columns, "hip_height", p.HipHeight)
	setIf(columns, "belt", p.Belt)
	setIf(columns, "trouser_hem", p.TrouserHem)
	setIf(columns, "knee", p.Knee)
	setIf(columns, "comment", p.Comment)
	setIf(columns, "date", UTCPtr(p.Date))
	return columns
}
