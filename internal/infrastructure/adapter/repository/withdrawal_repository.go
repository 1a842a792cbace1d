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

// WithdrawalRepository implements persistence.WithdrawalRepository using GORM
type WithdrawalRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewWithdrawalRepository creates a new WithdrawalRepository instance
func NewWithdrawalRepository(db *gorm.DB, logger coreport.Logger) *WithdrawalRepository {
	return &WithdrawalRepository{db: db, logger: logger}
}

// Create appends a withdrawal audit record and writes back its id
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	withdrawalModel := model.Withdrawal{
		UserID:      withdrawal.UserID,
		Name:        withdrawal.Name,
		Phone:       withdrawal.Phone,
		PixKey:      withdrawal.PixKey,
		Amount:      withdrawal.Amount,
		RequestedAt: withdrawal.RequestedAt,
	}

	result := r.db.WithContext(ctx).Create(&withdrawalModel)
	if result.Error != nil {
		r.logger.Error("Database error when creating withdrawal record", map[string]any{
			"user_id": withdrawal.UserID,
			"amount":  withdrawal.Amount,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	withdrawal.ID = withdrawalModel.ID
	return nil
}

// ListByUser returns the user's withdrawal history, newest first
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Withdrawal, error) {
	var withdrawalModels []model.Withdrawal
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&withdrawalModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing withdrawals", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	withdrawals := make([]entity.Withdrawal, 0, len(withdrawalModels))
	for _, m := range withdrawalModels {
		withdrawals = append(withdrawals, entity.Withdrawal{
			ID:          m.ID,
			UserID:      m.UserID,
			Name:        m.Name,
			Phone:       m.Phone,
			PixKey:      m.PixKey,
			Amount:      m.Amount,
			RequestedAt: m.RequestedAt,
		})
	}
	return withdrawals, nil
}
