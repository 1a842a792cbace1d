package persistence

import (
	"context"
	"time"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// HoldingRepository defines the operations needed on purchased assets
type HoldingRepository interface {
	// Create persists a freshly purchased holding
	Create(ctx context.Context, holding *entity.Holding) error

	// ListByUser returns all holdings owned by the user, oldest first
	ListByUser(ctx context.Context, userID uint64) ([]entity.Holding, error)

	// CountByUser returns how many holdings the user owns.
	// Used for the first-purchase check and the withdrawal precondition.
	CountByUser(ctx context.Context, userID uint64) (int64, error)

	// UpdateLastAccrual advances a holding's accrual checkpoint
	//
	// Possible errors:
	// - ErrHoldingNotFound: If the holding doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateLastAccrual(ctx context.Context, holdingID uint64, checkpoint time.Time) error

	// ListUserIDsWithHoldings returns the distinct owners of at least one
	// holding. Used by the scheduled accrual sweep.
	ListUserIDsWithHoldings(ctx context.Context) ([]uint64, error)
}
