package repositories

import (
	"context"
	"errors"

	"coutupro/internal/database"
	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/services"

	"gorm.io/gorm"
)

type baseRepository struct {
	db  database.DB
	log logger.Logger
}

func newBase(db database.DB, name string) baseRepository {
	return baseRepository{db: db, log: logger.New(name)}
}

func (r baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// translate maps driver errors onto the model sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}

func createRecord[T any](db *gorm.DB, log logger.Logger, record *T) error {
	if err := db.Create(record).Error; err != nil {
		return log.Function("Create").Err("failed to create record", translate(err))
	}
	return nil
}

func createBatch[T any](db *gorm.DB, log logger.Logger, records []T) error {
	if len(records) == 0 {
		return nil
	}

	if err := db.Create(&records).Error; err != nil {
		return log.Function("CreateBatch").
			Err("failed to create records", translate(err), "count", len(records))
	}
	return nil
}

func findByID[T any](db *gorm.DB, log logger.Logger, id string) (*T, error) {
	var record T
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return nil, log.Function("GetByID").Err("failed to get record", translate(err), "id", id)
	}
	return &record, nil
}

// updateByID merges columns into the row with the given id. An empty
// patch still reports a missing row.
func updateByID[T any](db *gorm.DB, log logger.Logger, id string, columns map[string]any) error {
	log = log.Function("Update")

	if len(columns) == 0 {
		var count int64
		if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			return log.Err("failed to check record", err, "id", id)
		}
		if count == 0 {
			return log.Err("record not found", ErrNotFound, "id", id)
		}
		return nil
	}

	result := db.Model(new(T)).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return log.Err("failed to update record", translate(result.Error), "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("record not found", ErrNotFound, "id", id)
	}
	return nil
}

func deleteByID[T any](db *gorm.DB, log logger.Logger, id string) error {
	if err := db.Delete(new(T), "id = ?", id).Error; err != nil {
		return log.Function("Delete").Err("failed to delete record", err, "id", id)
	}
	return nil
}

func clearTable[T any](db *gorm.DB, log logger.Logger) (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T))
	if result.Error != nil {
		return 0, log.Function("Clear").Err("failed to clear table", result.Error)
	}
	return result.RowsAffected, nil
}

func count[T any](db *gorm.DB, log logger.Logger) (int64, error) {
	var total int64
	if err := db.Model(new(T)).Count(&total).Error; err != nil {
		return 0, log.Function("Count").Err("failed to count records", err)
	}
	return total, nil
}

// nonNil keeps listings as empty slices rather than nil.
func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
