package database

import (
	"errors"
	"fmt"
	"time"
)

// Config carries everything needed to open and pool the postgres connection
type Config struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        string
}

var sslModes = map[string]bool{
	"disable":     true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Validate rejects configurations that could never connect
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", c.Port)
	}
	if !sslModes[c.SSLMode] {
		return fmt.Errorf("unknown ssl mode %q", c.SSLMode)
	}
	if c.MaxOpenConns <= 0 || c.MaxIdleConns <= 0 {
		return fmt.Errorf("connection pool sizes must be positive (open=%d idle=%d)",
			c.MaxOpenConns, c.MaxIdleConns)
	}
	return nil
}

// DSN renders the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}
