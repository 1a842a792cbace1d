package config

import (
	"errors"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Payment     PaymentConfig  `mapstructure:"payment"`
	Mail        MailConfig     `mapstructure:"mail"`
	Wallet      WalletConfig   `mapstructure:"wallet"`
	Referral    ReferralConfig `mapstructure:"referral"`
	Yield       YieldConfig    `mapstructure:"yield"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`     // seconds
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`    // seconds
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"`     // seconds
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"` // seconds
	AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains password hashing and session token settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // hours
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// PaymentConfig contains Mercado Pago settings
type PaymentConfig struct {
	AccessToken string        `mapstructure:"accessToken"`
	PayerEmail  string        `mapstructure:"payerEmail"`
	BaseURL     string        `mapstructure:"baseURL"`
	Timeout     time.Duration `mapstructure:"timeout"` // seconds
}

// MailConfig contains SMTP settings for the payout mailbox
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// WalletConfig contains deposit and withdrawal minimums as two-decimal strings
type WalletConfig struct {
	MinDeposit    string `mapstructure:"minDeposit"`
	MinWithdrawal string `mapstructure:"minWithdrawal"`
}

// ReferralConfig selects the bonus policy. Rates are basis points of the
// invited user's first purchase price.
type ReferralConfig struct {
	Policy        string  `mapstructure:"policy"` // "flat" or "tiered"
	FirstBps      int64   `mapstructure:"firstBps"`
	SubsequentBps int64   `mapstructure:"subsequentBps"`
	TieredBps     []int64 `mapstructure:"tieredBps"`
}

// YieldConfig controls the background accrual sweep
type YieldConfig struct {
	SweepEnabled  bool   `mapstructure:"sweepEnabled"`
	SweepSchedule string `mapstructure:"sweepSchedule"` // cron expression
}

// Validate checks the settings the application cannot start without
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database host is required")
	}
	if c.Database.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database.Database == "" {
		return errors.New("database name is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth JWT secret is required")
	}
	if c.Environment == Production && c.Payment.AccessToken == "" {
		return errors.New("payment access token is required in production")
	}
	if c.Referral.Policy != "flat" && c.Referral.Policy != "tiered" {
		return errors.New("referral policy must be \"flat\" or \"tiered\"")
	}
	return nil
}
