package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
)

// pingTimeout bounds the startup reachability check
const pingTimeout = 5 * time.Second

// Connection wraps the gorm handle together with the config it was opened with
type Connection struct {
	DB     *gorm.DB
	Config *Config
}

// NewConnection opens the postgres pool, applies the pooling limits and
// verifies the server is reachable before returning.
func NewConnection(cfg *Config, coreLogger coreport.Logger) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: NewDatabaseLogger(coreLogger, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	coreLogger.Info("Database connected", map[string]any{
		"host":     cfg.Host,
		"database": cfg.Database,
	})
	return &Connection{DB: db, Config: cfg}, nil
}

// Close releases the underlying connection pool
func (c *Connection) Close() error {
	pool, err := c.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}
