package model

import (
	"time"
)

// Withdrawal represents the database model for withdrawal audit records.
// Name, phone and pix key are denormalized so the record matches the mailed
// payout notice even if the account changes later.
type Withdrawal struct {
	ID          uint64    `gorm:"primaryKey"`
	UserID      uint64    `gorm:"not null;index"`
	Name        string    `gorm:"not null"`
	Phone       string    `gorm:"not null"`
	PixKey      string    `gorm:"not null"`
	Amount      int64     `gorm:"not null"` // centavos
	RequestedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Withdrawal
func (Withdrawal) TableName() string {
	return "withdrawals"
}
