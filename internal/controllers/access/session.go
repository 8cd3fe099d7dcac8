package accessController

import (
	"context"
	"sync"

	"coutupro/internal/logger"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
)

const AuthenticatedFlag = "coutupro_authenticated"

// Session is the installation's logged-in state. It is loaded once from
// the persisted flag and kept in sync with it on login and logout.
type Session struct {
	mu                 sync.RWMutex
	authenticated      bool
	access             *AccessController
	flagRepo           repositories.FlagRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func NewSession(
	access *AccessController,
	flagRepo repositories.FlagRepository,
	transactionService *services.TransactionService,
) *Session {
	return &Session{
		access:             access,
		flagRepo:           flagRepo,
		transactionService: transactionService,
		log:                logger.New("Session"),
	}
}

func (s *Session) Init(ctx context.Context) error {
	authenticated, err := s.flagRepo.Get(ctx, AuthenticatedFlag)
	if err != nil {
		return s.log.Function("Init").Err("failed to load session flag", err)
	}

	s.mu.Lock()
	s.authenticated = authenticated
	s.mu.Unlock()
	return nil
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Login redeems code, records the user and persists the authenticated
// flag in one transaction. A rejected code returns a nil user and no error.
func (s *Session) Login(ctx context.Context, code string) (*User, error) {
	log := s.log.Function("Login")

	var user *User
	err := s.transactionService.Execute(ctx, func(txCtx context.Context) error {
		valid, err := s.access.ValidateAccessCode(txCtx, code)
		if err != nil || !valid {
			return err
		}

		user, err = s.access.CreateUser(txCtx, code)
		if err != nil {
			return err
		}

		return s.flagRepo.Set(txCtx, AuthenticatedFlag, true)
	})
	if err != nil {
		return nil, log.Err("failed to log in", err)
	}
	if user == nil {
		return nil, nil
	}

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()

	log.Info("session opened", "userID", user.ID)
	return user, nil
}

func (s *Session) Logout(ctx context.Context) error {
	if err := s.flagRepo.Set(ctx, AuthenticatedFlag, false); err != nil {
		return s.log.Function("Logout").Err("failed to clear session flag", err)
	}

	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
	return nil
}
