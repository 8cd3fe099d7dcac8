package repositories

import (
	"context"
	"errors"
	"time"

	"coutupro/internal/database"
	. "coutupro/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlagRepository interface {
	Get(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string, value bool) error
}

type flagRepository struct {
	baseRepository
}

func NewFlag(db database.DB) FlagRepository {
	return &flagRepository{newBase(db, "flagRepository")}
}

// Get reports false for a flag that was never written.
func (r *flagRepository) Get(ctx context.Context, name string) (bool, error) {
	var flag Flag
	err := r.getDB(ctx).First(&flag, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, r.log.Function("Get").Err("failed to read flag", err, "name", name)
	}
	return flag.Value, nil
}

func (r *flagRepository) Set(ctx context.Context, name string, value bool) error {
	flag := Flag{Name: name, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&flag).Error
	if err != nil {
		return r.log.Function("Set").Err("failed to write flag", err, "name", name)
	}
	return nil
}
