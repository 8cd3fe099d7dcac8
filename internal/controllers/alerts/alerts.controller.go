package alertController

import (
	"context"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
	"coutupro/internal/utils"
)

// Notifier pushes newly created alerts to connected sessions.
type Notifier interface {
	BroadcastAlert(alert Alert)
}

type AlertController struct {
	alertRepo                repositories.AlertRepository
	cacheInvalidationService *services.CacheInvalidationService
	notifier                 Notifier
	log                      logger.Logger
	now                      func() time.Time
}

func New(
	alertRepo repositories.AlertRepository,
	cacheInvalidationService *services.CacheInvalidationService,
	notifier Notifier,
) *AlertController {
	return &AlertController{
		alertRepo:                alertRepo,
		cacheInvalidationService: cacheInvalidationService,
		notifier:                 notifier,
		log:                      logger.New("AlertController"),
		now:                      time.Now,
	}
}

func (c *AlertController) CreateAlert(ctx context.Context, req CreateAlertRequest) (*Alert, error) {
	log := c.log.Function("CreateAlert")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, utils.Invalid("unknown alert type %q", req.Type)
	}

	alert := &Alert{
		Type:      req.Type,
		Message:   req.Message,
		OrderID:   req.OrderID,
		IsRead:    false,
		CreatedAt: c.now().UTC(),
	}

	if err := c.alertRepo.Create(ctx, alert); err != nil {
		return nil, log.Err("failed to create alert", err, "type", req.Type)
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	if c.notifier != nil {
		c.notifier.BroadcastAlert(*alert)
	}

	return alert, nil
}

// CreateAlertOnce skips the insert when an identical unread alert already
// exists. It reports whether a new alert was written.
func (c *AlertController) CreateAlertOnce(ctx context.Context, req CreateAlertRequest) (bool, error) {
	exists, err := c.alertRepo.ExistsUnread(ctx, req.Type, req.OrderID, req.Message)
	if err != nil {
		return false, c.log.Function("CreateAlertOnce").
			Err("failed to check existing alert", err, "type", req.Type)
	}
	if exists {
		return false, nil
	}

	if _, err := c.CreateAlert(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

func (c *AlertController) GetAllAlerts(ctx context.Context) ([]Alert, error) {
	return c.alertRepo.GetAll(ctx)
}

func (c *AlertController) MarkAlertAsRead(ctx context.Context, id string) error {
	if err := c.alertRepo.MarkRead(ctx, id); err != nil {
		return err
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	return nil
}

func (c *AlertController) MarkAllAlertsAsRead(ctx context.Context) (int64, error) {
	updated, err := c.alertRepo.MarkAllRead(ctx)
	if err != nil {
		return 0, err
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	c.log.Function("MarkAllAlertsAsRead").Debug("alerts marked read", "count", updated)
	return updated, nil
}

func (c *AlertController) GetUnreadAlertCount(ctx context.Context) (int64, error) {
	return c.alertRepo.CountUnread(ctx)
}
