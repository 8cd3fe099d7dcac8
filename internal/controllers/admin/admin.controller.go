package adminController

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"coutupro/config"
	"coutupro/internal/logger"
	"coutupro/internal/repositories"
	"coutupro/internal/utils"

	. "coutupro/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const (
	codeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	generatedCodeSize = 8
	generateAttempts  = 5
)

type AdminController struct {
	accessCodeRepo repositories.AccessCodeRepository
	Config         config.Config
	log            logger.Logger
	now            func() time.Time
}

func New(
	accessCodeRepo repositories.AccessCodeRepository,
	config config.Config,
) *AdminController {
	return &AdminController{
		accessCodeRepo: accessCodeRepo,
		Config:         config,
		log:            logger.New("AdminController"),
		now:            time.Now,
	}
}

// CheckMasterCode compares secret against the configured bcrypt hash.
// Without a configured hash every secret is refused.
func (c *AdminController) CheckMasterCode(secret string) bool {
	if c.Config.AdminSecretHash == "" || secret == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(c.Config.AdminSecretHash), []byte(secret))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		c.log.Function("CheckMasterCode").Er("failed to compare master code", err)
	}
	return err == nil
}

func (c *AdminController) CreateAccessCode(
	ctx context.Context,
	req CreateAccessCodeRequest,
) (*AccessCode, error) {
	log := c.log.Function("CreateAccessCode")

	req.Code = strings.TrimSpace(req.Code)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	accessCode := &AccessCode{
		Code:      req.Code,
		IsUsed:    false,
		CreatedAt: c.now().UTC(),
	}

	if err := c.accessCodeRepo.Create(ctx, accessCode); err != nil {
		return nil, log.Err("failed to create access code", err)
	}

	log.Info("access code created", "id", accessCode.ID)
	return accessCode, nil
}

// GenerateAccessCode stores a fresh random code, drawing again on the
// rare collision with an existing one.
func (c *AdminController) GenerateAccessCode(ctx context.Context) (*AccessCode, error) {
	log := c.log.Function("GenerateAccessCode")

	for attempt := 0; attempt < generateAttempts; attempt++ {
		code, err := randomCode(generatedCodeSize)
		if err != nil {
			return nil, log.Err("failed to generate access code", err)
		}

		accessCode, err := c.CreateAccessCode(ctx, CreateAccessCodeRequest{Code: code})
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		return accessCode, err
	}

	return nil, log.Error("failed to generate unique access code", "attempts", generateAttempts)
}

func (c *AdminController) GetAllAccessCodes(ctx context.Context) ([]AccessCode, error) {
	return c.accessCodeRepo.GetAll(ctx)
}

func (c *AdminController) GetAccessCodeStats(ctx context.Context) (AccessCodeStats, error) {
	return c.accessCodeRepo.Stats(ctx)
}

func randomCode(size int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))

	var b strings.Builder
	b.Grow(size)
	for i := 0; i < size; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
