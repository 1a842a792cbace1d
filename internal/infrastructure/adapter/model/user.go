package model

import (
	"time"
)

// User represents the database model for user accounts
type User struct {
	ID            uint64    `gorm:"primaryKey"`
	Name          string    `gorm:"not null"`
	Phone         string    `gorm:"not null;uniqueIndex"`
	PasswordHash  string    `gorm:"not null"`
	Balance       int64     `gorm:"not null"` // Balance in centavos
	InviteCode    string    `gorm:"not null;uniqueIndex"`
	InviterCode   string    `gorm:"index"`
	ReferralCount int64     `gorm:"default:0"`
	PixKey        string    ``
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
