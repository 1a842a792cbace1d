package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/model"
)

// ReferralRepository implements persistence.ReferralRepository using GORM
type ReferralRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewReferralRepository creates a new ReferralRepository instance
func NewReferralRepository(db *gorm.DB, logger coreport.Logger) *ReferralRepository {
	return &ReferralRepository{db: db, logger: logger}
}

func modelToReferral(recordModel *model.ReferralRecord) entity.ReferralRecord {
	return entity.ReferralRecord{
		ID:           recordModel.ID,
		InviterID:    recordModel.InviterID,
		InvitedName:  recordModel.InvitedName,
		InvitedPhone: recordModel.InvitedPhone,
		Bonus:        recordModel.Bonus,
		BonusPaid:    recordModel.BonusPaid,
		CreatedAt:    recordModel.CreatedAt,
	}
}

// Create persists a new, unpaid referral record. A duplicate for the same
// inviter and invited phone hits the composite unique index and is dropped.
func (r *ReferralRepository) Create(ctx context.Context, record *entity.ReferralRecord) error {
	recordModel := model.ReferralRecord{
		InviterID:    record.InviterID,
		InvitedName:  record.InvitedName,
		InvitedPhone: record.InvitedPhone,
		CreatedAt:    record.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&recordModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			r.logger.Warn("Referral record already exists", map[string]any{
				"inviter_id":    record.InviterID,
				"invited_phone": record.InvitedPhone,
			})
			return nil
		}
		r.logger.Error("Database error when creating referral record", map[string]any{
			"inviter_id": record.InviterID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	record.ID = recordModel.ID
	return nil
}

// GetByInviterAndPhone locates the record linking an inviter to an invited phone
func (r *ReferralRepository) GetByInviterAndPhone(ctx context.Context, inviterID uint64, invitedPhone string) (*entity.ReferralRecord, error) {
	var recordModel model.ReferralRecord
	result := r.db.WithContext(ctx).
		Where("inviter_id = ? AND invited_phone = ?", inviterID, invitedPhone).
		First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrReferralNotFound
		}
		r.logger.Error("Database error when getting referral record", map[string]any{
			"inviter_id":    inviterID,
			"invited_phone": invitedPhone,
			"error":         result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	record := modelToReferral(&recordModel)
	return &record, nil
}

// CountPaidByInviter returns how many of the inviter's records are already paid
func (r *ReferralRepository) CountPaidByInviter(ctx context.Context, inviterID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ReferralRecord{}).
		Where("inviter_id = ? AND bonus_paid = ?", inviterID, true).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Database error when counting paid referrals", map[string]any{
			"inviter_id": inviterID,
			"error":      result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count, nil
}

// MarkPaid claims the record's one-time paid flag. The WHERE clause only
// matches an unpaid row, so of two racing settlements exactly one sees
// RowsAffected == 1.
func (r *ReferralRepository) MarkPaid(ctx context.Context, recordID uint64, bonus int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.ReferralRecord{}).
		Where("id = ? AND bonus_paid = ?", recordID, false).
		Updates(map[string]interface{}{
			"bonus_paid": true,
			"bonus":      bonus,
		})
	if result.Error != nil {
		r.logger.Error("Database error when marking referral paid", map[string]any{
			"record_id": recordID,
			"error":     result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return result.RowsAffected == 1, nil
}

// ListByInviter returns all referral records created by the inviter, newest first
func (r *ReferralRepository) ListByInviter(ctx context.Context, inviterID uint64) ([]entity.ReferralRecord, error) {
	var recordModels []model.ReferralRecord
	result := r.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&recordModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing referral records", map[string]any{
			"inviter_id": inviterID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	records := make([]entity.ReferralRecord, 0, len(recordModels))
	for i := range recordModels {
		records = append(records, modelToReferral(&recordModels[i]))
	}
	return records, nil
}
