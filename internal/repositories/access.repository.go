package repositories

import (
	"context"
	"time"

	"coutupro/internal/database"
	. "coutupro/internal/models"
)

type AccessCodeRepository interface {
	Create(ctx context.Context, code *AccessCode) error
	GetAll(ctx context.Context) ([]AccessCode, error)
	GetByCode(ctx context.Context, code string) (*AccessCode, error)
	Consume(ctx context.Context, code string, usedAt time.Time) (bool, error)
	Stats(ctx context.Context) (AccessCodeStats, error)
}

type accessCodeRepository struct {
	baseRepository
}

func NewAccessCode(db database.DB) AccessCodeRepository {
	return &accessCodeRepository{newBase(db, "accessCodeRepository")}
}

func (r *accessCodeRepository) Create(ctx context.Context, code *AccessCode) error {
	return createRecord(r.getDB(ctx), r.log, code)
}

func (r *accessCodeRepository) GetAll(ctx context.Context) ([]AccessCode, error) {
	var codes []AccessCode
	if err := r.getDB(ctx).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get access codes", err)
	}
	return nonNil(codes), nil
}

func (r *accessCodeRepository) GetByCode(ctx context.Context, code string) (*AccessCode, error) {
	var accessCode AccessCode
	if err := r.getDB(ctx).First(&accessCode, "code = ?", code).Error; err != nil {
		return nil, r.log.Function("GetByCode").Err("failed to get access code", translate(err))
	}
	return &accessCode, nil
}

// Consume flips an unused code to used in a single statement and reports
// whether this call was the one that did it.
func (r *accessCodeRepository) Consume(
	ctx context.Context,
	code string,
	usedAt time.Time,
) (bool, error) {
	result := r.getDB(ctx).
		Model(&AccessCode{}).
		Where("code = ? AND is_used = ?", code, false).
		Updates(map[string]any{"is_used": true, "used_at": usedAt.UTC()})
	if result.Error != nil {
		return false, r.log.Function("Consume").Err("failed to consume access code", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *accessCodeRepository) Stats(ctx context.Context) (AccessCodeStats, error) {
	var stats AccessCodeStats
	err := r.getDB(ctx).
		Model(&AccessCode{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_used THEN 1 ELSE 0 END), 0) AS used").
		Scan(&stats).Error
	if err != nil {
		return AccessCodeStats{}, r.log.Function("Stats").Err("failed to count access codes", err)
	}
	stats.Unused = stats.Total - stats.Used
	return stats, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetLatest(ctx context.Context) (*User, error)
}

type userRepository struct {
	baseRepository
}

func NewUser(db database.DB) UserRepository {
	return &userRepository{newBase(db, "userRepository")}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	return createRecord(r.getDB(ctx), r.log, user)
}

func (r *userRepository) GetLatest(ctx context.Context) (*User, error) {
	var user User
	if err := r.getDB(ctx).Order("created_at DESC").First(&user).Error; err != nil {
		return nil, r.log.Function("GetLatest").Err("failed to get latest user", translate(err))
	}
	return &user, nil
}
