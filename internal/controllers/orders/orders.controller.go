package orderController

import (
	"context"
	"errors"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
	"coutupro/internal/utils"
)

type OrderController struct {
	orderRepo                repositories.OrderRepository
	paymentRepo              repositories.PaymentRepository
	measurementRepo          repositories.MeasurementRepository
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	orderLocks               *services.KeyedLock
	log                      logger.Logger
	now                      func() time.Time
}

func New(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	measurementRepo repositories.MeasurementRepository,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
) *OrderController {
	return &OrderController{
		orderRepo:                orderRepo,
		paymentRepo:              paymentRepo,
		measurementRepo:          measurementRepo,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		orderLocks:               services.NewKeyedLock(),
		log:                      logger.New("OrderController"),
		now:                      time.Now,
	}
}

// CreateOrder records an order against the client's most recent
// measurement and, when a deposit is given, the matching Deposit payment.
// Both rows are written in one transaction.
func (c *OrderController) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	log := c.log.Function("CreateOrder")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Deposit.GreaterThan(req.TotalAmount) {
		log.Warn("deposit exceeds total", "total", req.TotalAmount, "deposit", req.Deposit)
	}

	now := c.now().UTC()
	var order *Order

	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		measurement, err := c.measurementRepo.GetLatestByClientID(txCtx, req.ClientID)
		if errors.Is(err, ErrNotFound) {
			return ErrNoMeasurements
		}
		if err != nil {
			return log.Err("failed to get latest measurement", err, "clientID", req.ClientID)
		}

		order = &Order{
			ClientID:         req.ClientID,
			MeasurementID:    measurement.ID,
			Model:            req.Model,
			Photo:            req.Photo,
			OrderDate:        now,
			ExpectedDelivery: req.ExpectedDelivery.UTC(),
			Status:           OrderStatusPending,
			TotalAmount:      req.TotalAmount,
			Deposit:          req.Deposit,
		}
		order.ApplyPaid(req.Deposit)

		if err := c.orderRepo.Create(txCtx, order); err != nil {
			return log.Err("failed to create order", err, "clientID", req.ClientID)
		}

		if !req.Deposit.IsPositive() {
			return nil
		}

		payment := &Payment{
			OrderID: order.ID,
			Amount:  req.Deposit,
			Type:    PaymentTypeDeposit,
			Date:    now,
		}
		if err := c.paymentRepo.Create(txCtx, payment); err != nil {
			return log.Err("failed to record deposit", err, "orderID", order.ID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	log.Info("order created", "orderID", order.ID, "paymentStatus", order.PaymentStatus)
	return order, nil
}

// AddPayment appends a payment and rewrites the order's balance from its
// full payment history. Payments on the same order are serialised.
func (c *OrderController) AddPayment(
	ctx context.Context,
	orderID string,
	req AddPaymentRequest,
) (*Order, *Payment, error) {
	log := c.log.Function("AddPayment")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, err
	}
	if req.Type == "" {
		req.Type = PaymentTypeBalance
	}
	if !req.Type.Valid() {
		return nil, nil, utils.Invalid("unknown payment type %q", req.Type)
	}

	unlock := c.orderLocks.Lock(orderID)
	defer unlock()

	var (
		order   *Order
		payment *Payment
	)

	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		order, err = c.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			return err
		}

		payment = &Payment{
			OrderID: orderID,
			Amount:  req.Amount,
			Type:    req.Type,
			Date:    c.now().UTC(),
		}
		if err := c.paymentRepo.Create(txCtx, payment); err != nil {
			return log.Err("failed to create payment", err, "orderID", orderID)
		}

		return c.recomputeBalance(txCtx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	log.Info("payment recorded",
		"orderID", orderID,
		"amount", payment.Amount,
		"remaining", order.Remaining,
		"paymentStatus", order.PaymentStatus,
	)
	return order, payment, nil
}

func (c *OrderController) recomputeBalance(ctx context.Context, order *Order) error {
	log := c.log.Function("recomputeBalance")

	paid, err := c.paymentRepo.SumByOrderID(ctx, order.ID)
	if err != nil {
		return log.Err("failed to sum payments", err, "orderID", order.ID)
	}

	order.ApplyPaid(paid)
	return c.orderRepo.Update(ctx, order.ID, map[string]any{
		"total_amount":   order.TotalAmount,
		"remaining":      order.Remaining,
		"payment_status": order.PaymentStatus,
	})
}

func (c *OrderController) GetAllOrders(ctx context.Context) ([]Order, error) {
	return c.orderRepo.GetAll(ctx)
}

func (c *OrderController) GetOrdersByStatus(ctx context.Context, status OrderStatus) ([]Order, error) {
	if !status.Valid() {
		return nil, utils.Invalid("unknown order status %q", status)
	}
	return c.orderRepo.GetByStatus(ctx, status)
}

func (c *OrderController) GetOrdersByClient(ctx context.Context, clientID string) ([]Order, error) {
	return c.orderRepo.GetByClientID(ctx, clientID)
}

func (c *OrderController) GetOrder(ctx context.Context, id string) (*Order, error) {
	order, err := c.orderRepo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return order, err
}

func (c *OrderController) GetPaymentsByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	return c.paymentRepo.GetByOrderID(ctx, orderID)
}

// UpdateOrder merges the supplied fields. A new total re-derives the
// balance against the payments already recorded.
func (c *OrderController) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*Order, error) {
	log := c.log.Function("UpdateOrder")

	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, utils.Invalid("unknown order status %q", *patch.Status)
	}

	if patch.TotalAmount != nil {
		unlock := c.orderLocks.Lock(id)
		defer unlock()
	}

	var order *Order
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := c.orderRepo.Update(txCtx, id, patch.Columns()); err != nil {
			return log.Err("failed to update order", err, "orderID", id)
		}

		var err error
		order, err = c.orderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if patch.TotalAmount == nil {
			return nil
		}
		order.TotalAmount = *patch.TotalAmount
		return c.recomputeBalance(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	return order, nil
}

type OrderDetail struct {
	Order       Order        `json:"order"`
	Measurement *Measurement `json:"measurement,omitempty"`
	Payments    []Payment    `json:"payments"`
}

func (c *OrderController) GetOrderDetail(ctx context.Context, id string) (*OrderDetail, error) {
	log := c.log.Function("GetOrderDetail")

	order, err := c.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	measurement, err := c.measurementRepo.GetByID(ctx, order.MeasurementID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, log.Err("failed to get measurement", err, "orderID", id)
	}

	payments, err := c.paymentRepo.GetByOrderID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get payments", err, "orderID", id)
	}

	return &OrderDetail{Order: *order, Measurement: measurement, Payments: payments}, nil
}
