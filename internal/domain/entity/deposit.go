package entity

import (
	"time"
)

// Deposit records one processor payment that was credited to a balance.
// The payment id is unique, so a redelivered webhook for an already
// credited payment cannot credit it again.
type Deposit struct {
	ID         uint64
	UserID     uint64
	PaymentID  string
	Amount     int64 // centavos
	CreditedAt time.Time
}
