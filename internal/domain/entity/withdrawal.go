package entity

import (
	"time"
)

// Withdrawal is an append-only audit record of a payout request. Payouts
// are executed manually by operators; the record plus the operator email
// are the whole pipeline.
type Withdrawal struct {
	ID          uint64
	UserID      uint64
	Name        string
	Phone       string
	PixKey      string
	Amount      int64 // centavos
	RequestedAt time.Time
}

// FormattedAmount returns the amount as a two-decimal string
func (w *Withdrawal) FormattedAmount() string {
	return FormatAmount(w.Amount)
}
