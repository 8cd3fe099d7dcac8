package services

import (
	"context"
	"time"

	"coutupro/internal/database"
	"coutupro/internal/logger"
)

const DashboardCacheKey = "dashboard:stats"

type CacheInvalidationService struct {
	db  database.DB
	ttl time.Duration
	log logger.Logger
}

func NewCacheInvalidationService(db database.DB, ttl time.Duration) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:  db,
		ttl: ttl,
		log: logger.New("CacheInvalidationService"),
	}
}

func (s *CacheInvalidationService) DashboardCache(ctx context.Context) *database.CacheBuilder {
	return database.NewCacheBuilder(s.db.Cache.Dashboard, DashboardCacheKey).
		WithContext(ctx).
		WithTTL(s.ttl)
}

// InvalidateDashboard drops cached aggregates after a business write. A
// failure is logged only; the cached value expires on its own.
func (s *CacheInvalidationService) InvalidateDashboard(ctx context.Context) {
	if s == nil || s.db.Cache.Dashboard == nil {
		return
	}

	if err := s.DashboardCache(ctx).Delete(); err != nil {
		s.log.Function("InvalidateDashboard").
			Warn("failed to invalidate dashboard cache", "key", DashboardCacheKey, "error", err)
	}
}
