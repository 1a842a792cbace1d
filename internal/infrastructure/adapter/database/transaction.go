package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/persistence"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/repository"
)

// txContextKey is unexported so only this package can plant transactions
type txContextKey struct{}

var errNoTransaction = errors.New("context carries no open transaction")

// gormUnitOfWork rides a gorm transaction through the context so the use
// case layer can group repository calls without importing gorm.
type gormUnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a transaction coordinator over the given handle
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &gormUnitOfWork{db: db, logger: logger, timeProvider: timeProvider}
}

func (u *gormUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{
			"error": tx.Error.Error(),
		})
		return ctx, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txContextKey{}, tx), nil
}

func (u *gormUnitOfWork) Commit(ctx context.Context) error {
	tx := txFrom(ctx)
	if tx == nil {
		return errNoTransaction
	}
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. Rolling back a transaction that already
// finished is treated as a no-op so deferred rollbacks stay cheap.
func (u *gormUnitOfWork) Rollback(ctx context.Context) error {
	tx := txFrom(ctx)
	if tx == nil {
		return errNoTransaction
	}

	err := tx.Rollback().Error
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	u.logger.Error("Failed to rollback transaction", map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("rollback transaction: %w", err)
}

func (u *gormUnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.handle(ctx), u.timeProvider, u.logger)
}

func (u *gormUnitOfWork) Holdings(ctx context.Context) persistence.HoldingRepository {
	return repository.NewHoldingRepository(u.handle(ctx), u.logger)
}

func (u *gormUnitOfWork) Referrals(ctx context.Context) persistence.ReferralRepository {
	return repository.NewReferralRepository(u.handle(ctx), u.logger)
}

func (u *gormUnitOfWork) Deposits(ctx context.Context) persistence.DepositRepository {
	return repository.NewDepositRepository(u.handle(ctx), u.logger)
}

func (u *gormUnitOfWork) Withdrawals(ctx context.Context) persistence.WithdrawalRepository {
	return repository.NewWithdrawalRepository(u.handle(ctx), u.logger)
}

// handle returns the context's transaction, or the root handle outside one
func (u *gormUnitOfWork) handle(ctx context.Context) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx
}
