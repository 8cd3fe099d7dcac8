package dashboardController

import (
	"context"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
)

type DashboardController struct {
	clientRepo               repositories.ClientRepository
	orderRepo                repositories.OrderRepository
	alertRepo                repositories.AlertRepository
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
	now                      func() time.Time
}

func New(
	clientRepo repositories.ClientRepository,
	orderRepo repositories.OrderRepository,
	alertRepo repositories.AlertRepository,
	cacheInvalidationService *services.CacheInvalidationService,
) *DashboardController {
	return &DashboardController{
		clientRepo:               clientRepo,
		orderRepo:                orderRepo,
		alertRepo:                alertRepo,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("DashboardController"),
		now:                      time.Now,
	}
}

// cachedStats tags the cached figures with their month so a value cached
// before midnight on the last day is not served in the next month.
type cachedStats struct {
	Month string         `json:"month"`
	Stats DashboardStats `json:"stats"`
}

func (c *DashboardController) GetStats(ctx context.Context) (DashboardStats, error) {
	log := c.log.Function("GetStats")

	now := c.now()
	month := now.Format("2006-01")

	var cached cachedStats
	found, err := c.cacheInvalidationService.DashboardCache(ctx).Get(&cached)
	if err != nil {
		log.Warn("failed to read dashboard cache", "error", err)
	}
	if found && cached.Month == month {
		return cached.Stats, nil
	}

	stats, err := c.computeStats(ctx, now)
	if err != nil {
		return DashboardStats{}, err
	}

	err = c.cacheInvalidationService.DashboardCache(ctx).
		WithStruct(cachedStats{Month: month, Stats: stats}).
		Set()
	if err != nil {
		log.Warn("failed to cache dashboard stats", "error", err)
	}

	return stats, nil
}

func (c *DashboardController) computeStats(ctx context.Context, now time.Time) (DashboardStats, error) {
	log := c.log.Function("computeStats")

	totalClients, err := c.clientRepo.Count(ctx)
	if err != nil {
		return DashboardStats{}, log.Err("failed to count clients", err)
	}

	inProgress, err := c.orderRepo.CountByStatus(ctx, OrderStatusPending, OrderStatusInProgress)
	if err != nil {
		return DashboardStats{}, log.Err("failed to count orders in progress", err)
	}

	from, to := MonthBounds(now)
	revenue, err := c.orderRepo.SumTotalBetween(ctx, from, to)
	if err != nil {
		return DashboardStats{}, log.Err("failed to sum monthly revenue", err)
	}

	unread, err := c.alertRepo.CountUnread(ctx)
	if err != nil {
		return DashboardStats{}, log.Err("failed to count unread alerts", err)
	}

	return DashboardStats{
		TotalClients:     totalClients,
		OrdersInProgress: inProgress,
		MonthlyRevenue:   revenue,
		UnreadAlerts:     unread,
	}, nil
}

// MonthBounds returns the UTC instants delimiting the calendar month of
// now in now's own location: [first day 00:00, first day of next month).
func MonthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}
