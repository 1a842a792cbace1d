package model

import (
	"time"
)

// ReferralRecord represents the database model for referral bookkeeping.
// The composite unique index rejects a second record for the same invited
// phone under the same inviter.
type ReferralRecord struct {
	ID           uint64    `gorm:"primaryKey"`
	InviterID    uint64    `gorm:"not null;uniqueIndex:idx_inviter_invited_phone"`
	InvitedName  string    `gorm:"not null"`
	InvitedPhone string    `gorm:"not null;uniqueIndex:idx_inviter_invited_phone"`
	Bonus        int64     `gorm:"default:0"` // centavos, set when paid
	BonusPaid    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for ReferralRecord
func (ReferralRecord) TableName() string {
	return "referral_records"
}
