package gateway

import (
	"context"
)

// WithdrawalNotice carries the fields operators need to execute a manual
// PIX payout
type WithdrawalNotice struct {
	Name   string
	Phone  string
	PixKey string
	Amount string // formatted, two decimal places
}

// Mailer dispatches operational notifications to the payout mailbox
type Mailer interface {
	SendWithdrawalNotice(ctx context.Context, notice WithdrawalNotice) error
}
