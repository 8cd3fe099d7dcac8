package alterationController

import (
	"context"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/utils"
)

type AlterationController struct {
	alterationRepo repositories.AlterationRepository
	orderRepo      repositories.OrderRepository
	log            logger.Logger
	now            func() time.Time
}

func New(
	alterationRepo repositories.AlterationRepository,
	orderRepo repositories.OrderRepository,
) *AlterationController {
	return &AlterationController{
		alterationRepo: alterationRepo,
		orderRepo:      orderRepo,
		log:            logger.New("AlterationController"),
		now:            time.Now,
	}
}

func (c *AlterationController) CreateAlteration(
	ctx context.Context,
	req CreateAlterationRequest,
) (*Alteration, error) {
	log := c.log.Function("CreateAlteration")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := c.orderRepo.GetByID(ctx, req.OrderID); err != nil {
		return nil, err
	}

	alteration := &Alteration{
		OrderID:      req.OrderID,
		Description:  req.Description,
		ExpectedDate: req.ExpectedDate.UTC(),
		Status:       AlterationStatusPending,
		CreatedAt:    c.now().UTC(),
	}

	if err := c.alterationRepo.Create(ctx, alteration); err != nil {
		return nil, log.Err("failed to create alteration", err, "orderID", req.OrderID)
	}

	return alteration, nil
}

func (c *AlterationController) GetAllAlterations(ctx context.Context) ([]Alteration, error) {
	return c.alterationRepo.GetAll(ctx)
}

func (c *AlterationController) GetAlterationsByOrder(
	ctx context.Context,
	orderID string,
) ([]Alteration, error) {
	return c.alterationRepo.GetByOrderID(ctx, orderID)
}

func (c *AlterationController) UpdateAlteration(
	ctx context.Context,
	id string,
	patch AlterationPatch,
) (*Alteration, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, utils.Invalid("unknown alteration status %q", *patch.Status)
	}

	if err := c.alterationRepo.Update(ctx, id, patch.Columns()); err != nil {
		return nil, err
	}

	return c.alterationRepo.GetByID(ctx, id)
}
