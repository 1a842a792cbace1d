package persistence

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// WithdrawalRepository defines operations on the append-only payout log
type WithdrawalRepository interface {
	// Create appends a withdrawal audit record
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error

	// ListByUser returns the user's withdrawal history, newest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.Withdrawal, error)
}
