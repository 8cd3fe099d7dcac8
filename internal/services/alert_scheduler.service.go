package services

import (
	"context"
	"fmt"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"

	"github.com/robfig/cron/v3"
)

type dueOrderSource interface {
	GetUndeliveredDueBefore(ctx context.Context, before time.Time) ([]Order, error)
	GetDeliveredWithBalance(ctx context.Context) ([]Order, error)
}

type dueAlterationSource interface {
	GetOpenDueBefore(ctx context.Context, before time.Time) ([]Alteration, error)
}

// AlertCreator writes an alert unless an identical unread one exists.
type AlertCreator interface {
	CreateAlertOnce(ctx context.Context, req CreateAlertRequest) (bool, error)
}

// AlertScheduler scans orders and alterations on a cron schedule and
// raises Delivery, Payment and Alteration alerts.
type AlertScheduler struct {
	orders      dueOrderSource
	alterations dueAlterationSource
	alerts      AlertCreator
	schedule    string
	horizon     time.Duration
	cron        *cron.Cron
	log         logger.Logger
	now         func() time.Time
}

func NewAlertScheduler(
	orders dueOrderSource,
	alterations dueAlterationSource,
	alerts AlertCreator,
	schedule string,
	horizonDays int,
) *AlertScheduler {
	return &AlertScheduler{
		orders:      orders,
		alterations: alterations,
		alerts:      alerts,
		schedule:    schedule,
		horizon:     time.Duration(horizonDays) * 24 * time.Hour,
		log:         logger.New("AlertScheduler"),
		now:         time.Now,
	}
}

// Start runs one scan immediately and then on every tick of the schedule.
func (s *AlertScheduler) Start(ctx context.Context) error {
	log := s.log.Function("Start")

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Run(ctx); err != nil {
			log.Er("scheduled alert scan failed", err)
		}
	})
	if err != nil {
		return log.Err("invalid alert schedule", err, "schedule", s.schedule)
	}

	if _, err := s.Run(ctx); err != nil {
		log.Er("initial alert scan failed", err)
	}

	s.cron.Start()
	log.Info("alert scheduler started", "schedule", s.schedule, "horizon", s.horizon)
	return nil
}

func (s *AlertScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Run performs one scan and returns the number of alerts created.
func (s *AlertScheduler) Run(ctx context.Context) (int, error) {
	log := s.log.Function("Run")

	now := s.now().UTC()
	dueBefore := now.Add(s.horizon)
	created := 0

	dueOrders, err := s.orders.GetUndeliveredDueBefore(ctx, dueBefore)
	if err != nil {
		return created, log.Err("failed to get orders due for delivery", err)
	}
	for _, order := range dueOrders {
		n, err := s.raise(ctx, AlertTypeDelivery, &order.ID, DeliveryMessage(order))
		if err != nil {
			return created, err
		}
		created += n
	}

	unpaid, err := s.orders.GetDeliveredWithBalance(ctx)
	if err != nil {
		return created, log.Err("failed to get delivered orders with balance", err)
	}
	for _, order := range unpaid {
		n, err := s.raise(ctx, AlertTypePayment, &order.ID, PaymentMessage(order))
		if err != nil {
			return created, err
		}
		created += n
	}

	alterations, err := s.alterations.GetOpenDueBefore(ctx, dueBefore)
	if err != nil {
		return created, log.Err("failed to get alterations due", err)
	}
	for _, alteration := range alterations {
		n, err := s.raise(ctx, AlertTypeAlteration, &alteration.OrderID, AlterationMessage(alteration))
		if err != nil {
			return created, err
		}
		created += n
	}

	if created > 0 {
		log.Info("alerts raised", "count", created)
	}
	return created, nil
}

func (s *AlertScheduler) raise(
	ctx context.Context,
	alertType AlertType,
	orderID *string,
	message string,
) (int, error) {
	ok, err := s.alerts.CreateAlertOnce(ctx, CreateAlertRequest{
		Type:    alertType,
		Message: message,
		OrderID: orderID,
	})
	if err != nil || !ok {
		return 0, err
	}
	return 1, nil
}

func DeliveryMessage(order Order) string {
	return fmt.Sprintf("Delivery of %q due on %s", order.Model, order.ExpectedDelivery.Format(time.DateOnly))
}

func PaymentMessage(order Order) string {
	return fmt.Sprintf("Order %q delivered with %s outstanding", order.Model, order.Remaining.StringFixed(2))
}

func AlterationMessage(alteration Alteration) string {
	return fmt.Sprintf("Alteration %q due on %s", alteration.Description, alteration.ExpectedDate.Format(time.DateOnly))
}
