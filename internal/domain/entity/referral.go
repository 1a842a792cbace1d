package entity

import (
	"time"
)

// ReferralRecord links an inviter to one invited user. It is created at the
// invitee's registration and BonusPaid flips to true exactly once, on the
// invitee's first purchase.
type ReferralRecord struct {
	ID           uint64
	InviterID    uint64
	InvitedName  string
	InvitedPhone string
	Bonus        int64 // centavos credited to the inviter, zero until paid
	BonusPaid    bool
	CreatedAt    time.Time
}

// NewReferralRecord creates an unpaid referral record
func NewReferralRecord(inviterID uint64, invitedName, invitedPhone string, createdAt time.Time) *ReferralRecord {
	return &ReferralRecord{
		InviterID:    inviterID,
		InvitedName:  invitedName,
		InvitedPhone: invitedPhone,
		CreatedAt:    createdAt,
	}
}
