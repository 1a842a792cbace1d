package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/model"
)

// HoldingRepository implements persistence.HoldingRepository using GORM
type HoldingRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewHoldingRepository creates a new HoldingRepository instance
func NewHoldingRepository(db *gorm.DB, logger coreport.Logger) *HoldingRepository {
	return &HoldingRepository{db: db, logger: logger}
}

func modelToHolding(holdingModel *model.Holding) entity.Holding {
	return entity.Holding{
		ID:          holdingModel.ID,
		UserID:      holdingModel.UserID,
		AssetName:   holdingModel.AssetName,
		Price:       holdingModel.Price,
		DailyYield:  holdingModel.DailyYield,
		PurchasedAt: holdingModel.PurchasedAt,
		LastAccrual: holdingModel.LastAccrual,
	}
}

// Create persists a freshly purchased holding and writes back its id
func (r *HoldingRepository) Create(ctx context.Context, holding *entity.Holding) error {
	holdingModel := model.Holding{
		UserID:      holding.UserID,
		AssetName:   holding.AssetName,
		Price:       holding.Price,
		DailyYield:  holding.DailyYield,
		PurchasedAt: holding.PurchasedAt,
		LastAccrual: holding.LastAccrual,
	}

	result := r.db.WithContext(ctx).Create(&holdingModel)
	if result.Error != nil {
		r.logger.Error("Database error when creating holding", map[string]any{
			"user_id":    holding.UserID,
			"asset_name": holding.AssetName,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	holding.ID = holdingModel.ID
	return nil
}

// ListByUser returns all holdings owned by the user, oldest first
func (r *HoldingRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Holding, error) {
	var holdingModels []model.Holding
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at ASC").
		Find(&holdingModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing holdings", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	holdings := make([]entity.Holding, 0, len(holdingModels))
	for i := range holdingModels {
		holdings = append(holdings, modelToHolding(&holdingModels[i]))
	}
	return holdings, nil
}

// CountByUser returns how many holdings the user owns
func (r *HoldingRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Holding{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Database error when counting holdings", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}

// UpdateLastAccrual advances a holding's accrual checkpoint
func (r *HoldingRepository) UpdateLastAccrual(ctx context.Context, holdingID uint64, checkpoint time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Holding{}).
		Where("id = ?", holdingID).
		Update("last_accrual", checkpoint)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return errs.ErrHoldingNotFound
		}
		r.logger.Error("Database error when updating accrual checkpoint", map[string]any{
			"holding_id": holdingID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrHoldingNotFound
	}
	return nil
}

// ListUserIDsWithHoldings returns the distinct owners of at least one holding
func (r *HoldingRepository) ListUserIDsWithHoldings(ctx context.Context) ([]uint64, error) {
	var userIDs []uint64
	result := r.db.WithContext(ctx).Model(&model.Holding{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		r.logger.Error("Database error when listing holders", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return userIDs, nil
}
