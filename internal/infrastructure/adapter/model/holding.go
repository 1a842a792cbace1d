package model

import (
	"time"
)

// Holding represents the database model for purchased assets
type Holding struct {
	ID          uint64     `gorm:"primaryKey"`
	UserID      uint64     `gorm:"not null;index"`
	AssetName   string     `gorm:"not null"`
	Price       int64      `gorm:"not null"` // centavos
	DailyYield  int64      `gorm:"not null"` // centavos per whole day
	PurchasedAt time.Time  `gorm:"not null"`
	LastAccrual *time.Time ``
}

// TableName specifies the table name for Holding
func (Holding) TableName() string {
	return "holdings"
}
