package persistence

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// ReferralRepository defines the operations needed on referral records
type ReferralRepository interface {
	// Create persists a new, unpaid referral record
	Create(ctx context.Context, record *entity.ReferralRecord) error

	// GetByInviterAndPhone locates the record linking an inviter to a
	// specific invited phone number
	//
	// Possible errors:
	// - ErrReferralNotFound: If no such record exists
	// - ErrDatabaseConnection: If database connection fails
	GetByInviterAndPhone(ctx context.Context, inviterID uint64, invitedPhone string) (*entity.ReferralRecord, error)

	// CountPaidByInviter returns how many of the inviter's referral records
	// already have the bonus paid. Zero selects the first-referral rate.
	CountPaidByInviter(ctx context.Context, inviterID uint64) (int64, error)

	// MarkPaid claims the record's one-time paid flag with a conditional
	// update (WHERE bonus_paid = false) and stores the bonus amount.
	// Returns false without error when another settlement already claimed it.
	MarkPaid(ctx context.Context, recordID uint64, bonus int64) (bool, error)

	// ListByInviter returns all referral records created by the inviter
	ListByInviter(ctx context.Context, inviterID uint64) ([]entity.ReferralRecord, error)
}
