package clientController

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

type ClientController struct {
	clientRepo               repositories.ClientRepository
	orderRepo                repositories.OrderRepository
	measurementRepo          repositories.MeasurementRepository
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
	now                      func() time.Time
}

func New(
	clientRepo repositories.ClientRepository,
	orderRepo repositories.OrderRepository,
	measurementRepo repositories.MeasurementRepository,
	cacheInvalidationService *services.CacheInvalidationService,
) *ClientController {
	return &ClientController{
		clientRepo:               clientRepo,
		orderRepo:                orderRepo,
		measurementRepo:          measurementRepo,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("ClientController"),
		now:                      time.Now,
	}
}

func (c *ClientController) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	log := c.log.Function("CreateClient")

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	client := &Client{
		LastName:   req.LastName,
		FirstNames: req.FirstNames,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		CreatedAt:  c.now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, log.Err("failed to create client", err)
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	log.Info("client created", "clientID", client.ID)
	return client, nil
}

func (c *ClientController) GetAllClients(ctx context.Context) ([]Client, error) {
	return c.clientRepo.GetAll(ctx)
}

func (c *ClientController) SearchClients(ctx context.Context, term string) ([]Client, error) {
	return c.clientRepo.Search(ctx, term)
}

// GetClient returns nil without error when the client does not exist.
func (c *ClientController) GetClient(ctx context.Context, id string) (*Client, error) {
	client, err := c.clientRepo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return client, err
}

func (c *ClientController) UpdateClient(ctx context.Context, id string, patch ClientPatch) (*Client, error) {
	log := c.log.Function("UpdateClient")

	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	if err := c.clientRepo.Update(ctx, id, patch.Columns()); err != nil {
		return nil, log.Err("failed to update client", err, "clientID", id)
	}

	return c.clientRepo.GetByID(ctx, id)
}

// DeleteClient removes only the client row; its measurements and orders
// stay in place.
func (c *ClientController) DeleteClient(ctx context.Context, id string) error {
	if err := c.clientRepo.Delete(ctx, id); err != nil {
		return c.log.Function("DeleteClient").Err("failed to delete client", err, "clientID", id)
	}

	c.cacheInvalidationService.InvalidateDashboard(ctx)
	return nil
}

type ClientDetail struct {
	Client       Client        `json:"client"`
	Measurements []Measurement `json:"measurements"`
	Orders       []Order       `json:"orders"`
}

// GetClientDetail gathers a client with its measurement history and orders.
func (c *ClientController) GetClientDetail(ctx context.Context, id string) (*ClientDetail, error) {
	log := c.log.Function("GetClientDetail")

	client, err := c.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	measurements, err := c.measurementRepo.GetByClientID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get measurements", err, "clientID", id)
	}

	orders, err := c.orderRepo.GetByClientID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get orders", err, "clientID", id)
	}

	return &ClientDetail{Client: *client, Measurements: measurements, Orders: orders}, nil
}
