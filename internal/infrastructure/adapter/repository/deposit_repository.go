package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/model"
)

// DepositRepository implements persistence.DepositRepository using GORM
type DepositRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewDepositRepository creates a new DepositRepository instance
func NewDepositRepository(db *gorm.DB, logger coreport.Logger) *DepositRepository {
	return &DepositRepository{db: db, logger: logger}
}

// Create inserts the deposit keyed by the processor's payment id. The
// unique index turns a webhook redelivery into ErrDepositAlreadyCredited
// instead of a second credit.
func (r *DepositRepository) Create(ctx context.Context, deposit *entity.Deposit) error {
	depositModel := model.Deposit{
		UserID:     deposit.UserID,
		PaymentID:  deposit.PaymentID,
		Amount:     deposit.Amount,
		CreditedAt: deposit.CreditedAt,
	}

	result := r.db.WithContext(ctx).Create(&depositModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return errs.ErrDepositAlreadyCredited
		}
		r.logger.Error("Database error when recording deposit", map[string]any{
			"user_id":    deposit.UserID,
			"payment_id": deposit.PaymentID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	deposit.ID = depositModel.ID
	return nil
}
