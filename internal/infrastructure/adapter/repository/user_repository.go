package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// modelToEntity converts a user model to an entity
func modelToUser(userModel *model.User) *entity.User {
	user := &entity.User{
		ID:            userModel.ID,
		Name:          userModel.Name,
		Phone:         userModel.Phone,
		PasswordHash:  userModel.PasswordHash,
		InviteCode:    userModel.InviteCode,
		InviterCode:   userModel.InviterCode,
		ReferralCount: uint64(userModel.ReferralCount),
		PixKey:        userModel.PixKey,
		CreatedAt:     userModel.CreatedAt,
		UpdatedAt:     userModel.UpdatedAt,
	}
	user.HydrateBalance(userModel.Balance)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["error"] = err.Error()
	if isConnectionFailure(err) {
		fields["connectivity"] = true
	}
	if isSerializationFailure(err) {
		fields["lock_conflict"] = true
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}
	if isDuplicateKey(err) {
		return errs.ErrDuplicatePhone
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, map[string]any{
			"user_id": id,
		})
	}
	return modelToUser(&userModel), nil
}

// GetByPhone retrieves a user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("phone = ?", phone).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by phone", result.Error, map[string]any{
			"phone": phone,
		})
	}
	return modelToUser(&userModel), nil
}

// GetForUpdate reads the user under a SELECT ... FOR UPDATE row lock.
// Callers run it inside a unit of work transaction; concurrent flows
// touching the same user block here until that transaction finishes.
func (r *UserRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user row", result.Error, map[string]any{
			"user_id": id,
		})
	}
	return modelToUser(&userModel), nil
}

// GetByInviteCode resolves a user by their own invite code
func (r *UserRepository) GetByInviteCode(ctx context.Context, code string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by invite code", result.Error, map[string]any{
			"invite_code": code,
		})
	}
	return modelToUser(&userModel), nil
}

// Create persists a new user. The generated id is written back to the entity.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Name:          user.Name,
		Phone:         user.Phone,
		PasswordHash:  user.PasswordHash,
		Balance:       user.Balance(),
		InviteCode:    user.InviteCode,
		InviterCode:   user.InviterCode,
		ReferralCount: int64(user.ReferralCount),
		PixKey:        user.PixKey,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, map[string]any{
			"phone": user.Phone,
		})
	}

	user.ID = userModel.ID
	r.logger.Info("User created", map[string]any{
		"user_id": user.ID,
		"phone":   user.Phone,
	})
	return nil
}

// Update persists mutable user fields
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"balance":        user.Balance(),
			"pix_key":        user.PixKey,
			"referral_count": user.ReferralCount,
			"updated_at":     r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, map[string]any{
			"user_id": user.ID,
		})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", map[string]any{
			"user_id": user.ID,
		})
		return errs.ErrUserNotFound
	}
	return nil
}

// AdjustBalance applies a balance delta inside a row-locked transaction.
// The row lock pairs with the per-user operation queue: the queue orders
// operations within this process, the lock protects against other replicas.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID uint64, delta int64) (*entity.User, error) {
	var user *entity.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userModel model.User
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userModel, userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return result.Error
		}

		newBalance := userModel.Balance + delta
		if newBalance < 0 {
			r.logger.Warn("Insufficient balance for debit", map[string]any{
				"user_id":         userID,
				"current_balance": entity.FormatAmount(userModel.Balance),
				"delta":           entity.FormatAmount(delta),
			})
			return errs.NewInsufficientBalanceError(userID,
				entity.FormatAmount(-delta), entity.FormatAmount(userModel.Balance))
		}

		userModel.Balance = newBalance
		userModel.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&userModel).Updates(map[string]interface{}{
			"balance":    userModel.Balance,
			"updated_at": userModel.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		user = modelToUser(&userModel)
		return nil
	})

	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) || errs.IsInsufficientBalanceError(err) {
			return nil, err
		}
		return nil, r.handleDatabaseError("adjusting balance", err, map[string]any{
			"user_id": userID,
			"delta":   delta,
		})
	}

	return user, nil
}

// AddReferralBonus credits the bonus and bumps the referral count in a
// single UPDATE so both land or neither does
func (r *UserRepository) AddReferralBonus(ctx context.Context, inviterID uint64, bonus int64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", inviterID).
		Updates(map[string]interface{}{
			"balance":        gorm.Expr("balance + ?", bonus),
			"referral_count": gorm.Expr("referral_count + 1"),
			"updated_at":     r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("crediting referral bonus", result.Error, map[string]any{
			"inviter_id": inviterID,
			"bonus":      bonus,
		})
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("Referral bonus credited", map[string]any{
		"inviter_id": inviterID,
		"bonus":      bonus,
	})
	return nil
}
