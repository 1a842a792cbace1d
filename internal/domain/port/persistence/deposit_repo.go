package persistence

import (
	"context"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
)

// DepositRepository defines operations on the credited-deposit ledger.
// The ledger exists so payment webhooks can be replayed safely: one row
// per processor payment id, inserted in the same transaction as the
// balance credit.
type DepositRepository interface {
	// Create inserts the deposit keyed by the processor's payment id
	//
	// Possible errors:
	// - ErrDepositAlreadyCredited: a deposit with this payment id exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, deposit *entity.Deposit) error
}
