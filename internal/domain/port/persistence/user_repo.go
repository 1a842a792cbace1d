package persistence

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// UserRepository defines the operations needed on user accounts
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByPhone retrieves a user by phone number (the login key)
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this phone
	// - ErrDatabaseConnection: If database connection fails
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)

	// GetForUpdate retrieves a user under a SELECT ... FOR UPDATE row lock.
	// Only meaningful inside a unit of work transaction; the lock holds
	// until that transaction finishes.
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByInviteCode resolves a user by their own invite code.
	// Used to find the inviter during registration and settlement.
	//
	// Possible errors:
	// - ErrUserNotFound: If no user owns this invite code
	// - ErrDatabaseConnection: If database connection fails
	GetByInviteCode(ctx context.Context, code string) (*entity.User, error)

	// Create persists a new user
	//
	// Possible errors:
	// - ErrDuplicatePhone: If the phone number is already registered
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update persists user fields (balance, pix key, referral count)
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// AdjustBalance applies a balance delta atomically inside a row-locked
	// transaction, failing with ErrInsufficientBalance when a negative delta
	// is not covered. Returns the updated user.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientBalance: If the delta would drive the balance negative
	// - ErrDatabaseConnection: If database connection fails
	AdjustBalance(ctx context.Context, userID uint64, delta int64) (*entity.User, error)

	// AddReferralBonus credits the bonus and increments the referral count
	// in one atomic update, so a crash cannot apply one without the other.
	//
	// Possible errors:
	// - ErrUserNotFound: If inviter doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	AddReferralBonus(ctx context.Context, inviterID uint64, bonus int64) error
}
