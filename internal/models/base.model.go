package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseUUIDModel struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`
}

// BeforeCreate only fills an empty ID so restored records keep theirs.
func (b *BaseUUIDModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id.String()
	}
	return nil
}

// UTC normalises t so stored timestamps compare and sort consistently.
func UTC(t time.Time) time.Time {
	return t.UTC()
}

func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func setIf[T any](columns map[string]any, column string, value *T) {
	if value != nil {
		columns[column] = *value
	}
}
