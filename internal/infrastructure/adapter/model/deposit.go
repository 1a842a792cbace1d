package model

import (
	"time"
)

// Deposit represents the database model for credited processor payments.
// The unique index on the payment id is what rejects a second credit for
// the same payment.
type Deposit struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;index"`
	PaymentID  string    `gorm:"not null;uniqueIndex"`
	Amount     int64     `gorm:"not null"` // centavos
	CreditedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Deposit
func (Deposit) TableName() string {
	return "deposits"
}
