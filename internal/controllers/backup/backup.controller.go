package backupController

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
)

type BackupController struct {
	clientRepo               repositories.ClientRepository
	measurementRepo          repositories.MeasurementRepository
	orderRepo                repositories.OrderRepository
	paymentRepo              repositories.PaymentRepository
	alterationRepo           repositories.AlterationRepository
	alertRepo                repositories.AlertRepository
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
}

func New(
	clientRepo repositories.ClientRepository,
	measurementRepo repositories.MeasurementRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	alterationRepo repositories.AlterationRepository,
	alertRepo repositories.AlertRepository,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
) *BackupController {
	return &BackupController{
		clientRepo:               clientRepo,
		measurementRepo:          measurementRepo,
		orderRepo:                orderRepo,
		paymentRepo:              paymentRepo,
		alterationRepo:           alterationRepo,
		alertRepo:                alertRepo,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("BackupController"),
	}
}

// ImportSummary counts the records restored per table.
type ImportSummary struct {
	Clients      int `json:"clients"`
	Measurements int `json:"mesures"`
	Orders       int `json:"commandes"`
	Payments     int `json:"paiements"`
	Alterations  int `json:"retouches"`
	Alerts       int `json:"alertes"`
}

// Snapshot reads every business table as one consistent document.
func (c *BackupController) Snapshot(ctx context.Context) (*BackupDocument, error) {
	log := c.log.Function("Snapshot")

	doc := &BackupDocument{}
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		if doc.Clients, err = c.clientRepo.GetAll(txCtx); err != nil {
			return err
		}
		if doc.Measurements, err = c.measurementRepo.GetAll(txCtx); err != nil {
			return err
		}
		if doc.Orders, err = c.orderRepo.GetAll(txCtx); err != nil {
			return err
		}
		if doc.Payments, err = c.paymentRepo.GetAll(txCtx); err != nil {
			return err
		}
		if doc.Alterations, err = c.alterationRepo.GetAll(txCtx); err != nil {
			return err
		}
		doc.Alerts, err = c.alertRepo.GetAll(txCtx)
		return err
	})
	if err != nil {
		return nil, log.Err("failed to read backup snapshot", err)
	}

	return doc, nil
}

// Export renders the snapshot as indented JSON.
func (c *BackupController) Export(ctx context.Context) ([]byte, error) {
	doc, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, c.log.Function("Export").Err("failed to encode backup", err)
	}

	c.log.Function("Export").Info("backup exported",
		"clients", len(doc.Clients),
		"orders", len(doc.Orders),
		"bytes", len(data),
	)
	return data, nil
}

// Import restores a document produced by Export. Records keep their ids;
// every table is written in one transaction so a failure applies nothing.
func (c *BackupController) Import(ctx context.Context, data []byte) (ImportSummary, error) {
	log := c.log.Function("Import")

	doc, err := decodeDocument(data)
	if err != nil {
		log.Warn("backup rejected", "error", err)
		return ImportSummary{}, err
	}

	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := c.clientRepo.CreateBatch(txCtx, doc.Clients); err != nil {
			return err
		}
		if err := c.measurementRepo.CreateBatch(txCtx, doc.Measurements); err != nil {
			return err
		}
		if err := c.orderRepo.CreateBatch(txCtx, doc.Orders); err != nil {
			return err
		}
		if err := c.paymentRepo.CreateBatch(txCtx, doc.Payments); err != nil {
			return err
		}
		if err := c.alterationRepo.CreateBatch(txCtx, doc.Alterations); err != nil {
			return err
		}
		if err := c.alertRepo.CreateBatch(txCtx, doc.Alerts); err != nil {
			return err
		}
		return c.rebalance(txCtx, balancedOrderIDs(doc))
	})
	if err != nil {
		return ImportSummary{}, log.Err("failed to import backup", err)
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)

	summary := ImportSummary{
		Clients:      len(doc.Clients),
		Measurements: len(doc.Measurements),
		Orders:       len(doc.Orders),
		Payments:     len(doc.Payments),
		Alterations:  len(doc.Alterations),
		Alerts:       len(doc.Alerts),
	}
	log.Info("backup imported", "summary", summary)
	return summary, nil
}

// rebalance derives remaining and paymentStatus from the stored payments
// rather than trusting the document's copy.
func (c *BackupController) rebalance(ctx context.Context, orderIDs []string) error {
	for _, id := range orderIDs {
		order, err := c.orderRepo.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: payment references unknown order %q", ErrInvalidBackup, id)
		}
		if err != nil {
			return err
		}

		paid, err := c.paymentRepo.SumByOrderID(ctx, id)
		if err != nil {
			return err
		}
		order.ApplyPaid(paid)

		if err := c.orderRepo.Update(ctx, id, map[string]any{
			"remaining":      order.Remaining,
			"payment_status": order.PaymentStatus,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData empties the six business tables. Users, access codes and
// flags are left alone.
func (c *BackupController) ClearAllData(ctx context.Context) error {
	log := c.log.Function("ClearAllData")

	clears := []func(context.Context) (int64, error){
		c.alertRepo.Clear,
		c.alterationRepo.Clear,
		c.paymentRepo.Clear,
		c.orderRepo.Clear,
		c.measurementRepo.Clear,
		c.clientRepo.Clear,
	}

	var removed int64
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		for _, clearTable := range clears {
			n, err := clearTable(txCtx)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return log.Err("failed to clear data", err)
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	log.Info("all business data cleared", "rows", removed)
	return nil
}

func normalize(doc *BackupDocument) {
	for i := range doc.Clients {
		doc.Clients[i].CreatedAt = UTC(doc.Clients[i].CreatedAt)
	}
	for i := range doc.Measurements {
		doc.Measurements[i].Date = UTC(doc.Measurements[i].Date)
	}
	for i := range doc.Orders {
		doc.Orders[i].OrderDate = UTC(doc.Orders[i].OrderDate)
		doc.Orders[i].ExpectedDelivery = UTC(doc.Orders[i].ExpectedDelivery)
	}
	for i := range doc.Payments {
		doc.Payments[i].Date = UTC(doc.Payments[i].Date)
	}
	for i := range doc.Alterations {
		doc.Alterations[i].ExpectedDate = UTC(doc.Alterations[i].ExpectedDate)
		doc.Alterations[i].CreatedAt = UTC(doc.Alterations[i].CreatedAt)
	}
	for i := range doc.Alerts {
		doc.Alerts[i].CreatedAt = UTC(doc.Alerts[i].CreatedAt)
	}
}
