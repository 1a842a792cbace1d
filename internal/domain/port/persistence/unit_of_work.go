package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository writes inside one database
// transaction. Purchase (balance debit + holding insert), withdrawal
// (balance debit + audit insert), deposit crediting (ledger insert +
// balance credit) and referral settlement (inviter credit + record claim)
// go through it so all writes land or none do.
type UnitOfWork interface {
	// Begin opens a transaction and returns a context carrying it
	Begin(ctx context.Context) (context.Context, error)

	// Commit finishes the transaction carried by ctx
	Commit(ctx context.Context) error

	// Rollback aborts the transaction carried by ctx. Calling it after
	// Commit is a no-op, which keeps deferred rollbacks safe.
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Holdings returns a holding repository bound to the current transaction
	Holdings(ctx context.Context) HoldingRepository

	// Referrals returns a referral repository bound to the current transaction
	Referrals(ctx context.Context) ReferralRepository

	// Deposits returns a deposit repository bound to the current transaction
	Deposits(ctx context.Context) DepositRepository

	// Withdrawals returns a withdrawal repository bound to the current transaction
	Withdrawals(ctx context.Context) WithdrawalRepository
}
