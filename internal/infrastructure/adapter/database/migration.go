package database

import (
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/model"
)

// Migrator applies schema migrations at startup
type Migrator struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrator creates a new Migrator instance
func NewMigrator(db *gorm.DB, logger coreport.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Migrate creates or updates all tables and their indexes
func (m *Migrator) Migrate() error {
	m.logger.Info("Running database migrations", nil)

	err := m.db.AutoMigrate(
		&model.User{},
		&model.Holding{},
		&model.ReferralRecord{},
		&model.Deposit{},
		&model.Withdrawal{},
	)
	if err != nil {
		m.logger.Error("Database migration failed", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}
