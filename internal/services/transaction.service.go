package services

import (
	"context"

	"coutupro/internal/database"
	"coutupro/internal/logger"

	"gorm.io/gorm"
)

type txKey struct{}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside one transaction. Repositories called with the
// context handed to fn join that transaction; any error rolls it back.
// Nested calls reuse the outer transaction.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := GetTransaction(ctx); ok {
		return fn(ctx)
	}

	log := s.log.Function("Execute")

	err := s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		log.Debug("transaction rolled back", "error", err)
		return err
	}

	return nil
}

func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}
