package accessController

import (
	"context"
	"errors"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
)

type AccessController struct {
	accessCodeRepo     repositories.AccessCodeRepository
	userRepo           repositories.UserRepository
	transactionService *services.TransactionService
	log                logger.Logger
	now                func() time.Time
}

func New(
	accessCodeRepo repositories.AccessCodeRepository,
	userRepo repositories.UserRepository,
	transactionService *services.TransactionService,
) *AccessController {
	return &AccessController{
		accessCodeRepo:     accessCodeRepo,
		userRepo:           userRepo,
		transactionService: transactionService,
		log:                logger.New("AccessController"),
		now:                time.Now,
	}
}

// ValidateAccessCode redeems code. It succeeds at most once per code;
// unknown, blank and already used codes are rejected without side effect.
// Matching is case-sensitive.
func (c *AccessController) ValidateAccessCode(ctx context.Context, code string) (bool, error) {
	log := c.log.Function("ValidateAccessCode")

	if code == "" {
		return false, nil
	}

	var consumed bool
	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		consumed, err = c.accessCodeRepo.Consume(txCtx, code, c.now())
		return err
	})
	if err != nil {
		return false, log.Err("failed to validate access code", err)
	}

	if !consumed {
		log.Info("access code rejected")
	}
	return consumed, nil
}

func (c *AccessController) CreateUser(ctx context.Context, code string) (*User, error) {
	user := &User{
		Code:      code,
		CreatedAt: c.now().UTC(),
		IsActive:  true,
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, c.log.Function("CreateUser").Err("failed to create user", err)
	}

	return user, nil
}

// GetCurrentUser returns the most recently created user, or nil when
// nobody has logged in yet.
func (c *AccessController) GetCurrentUser(ctx context.Context) (*User, error) {
	user, err := c.userRepo.GetLatest(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return user, err
}
