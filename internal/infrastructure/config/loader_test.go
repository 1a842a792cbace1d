package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BV_ENV", "test")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, Test, config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 15*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, 5432, config.Database.Port)
	assert.Equal(t, 30*time.Minute, config.Database.ConnMaxLifetime)
	assert.Equal(t, 72*time.Hour, config.Auth.TokenTTL)
	assert.Equal(t, "70.00", config.Wallet.MinDeposit)
	assert.Equal(t, "45.00", config.Wallet.MinWithdrawal)
	assert.Equal(t, "flat", config.Referral.Policy)
	assert.Equal(t, int64(3700), config.Referral.FirstBps)
	assert.Equal(t, "0 3 * * *", config.Yield.SweepSchedule)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("BV_ENV", "test")
	t.Setenv("BV_DB_HOST", "db.internal")
	t.Setenv("BV_DB_USERNAME", "boatvest")
	t.Setenv("BV_AUTH_JWT_SECRET", "override-secret")
	t.Setenv("BV_MAIL_HOST", "smtp.internal")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "db.internal", config.Database.Host)
	assert.Equal(t, "boatvest", config.Database.Username)
	assert.Equal(t, "override-secret", config.Auth.JWTSecret)
	assert.Equal(t, "smtp.internal", config.Mail.Host)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: Development,
			Database:    DatabaseConfig{Host: "localhost", Username: "boatvest", Database: "boatvest"},
			Auth:        AuthConfig{JWTSecret: "secret"},
			Referral:    ReferralConfig{Policy: "flat"},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("requires database host", func(t *testing.T) {
		c := valid()
		c.Database.Host = ""
		assert.Error(t, c.Validate())
	})

	t.Run("requires jwt secret", func(t *testing.T) {
		c := valid()
		c.Auth.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("requires payment token only in production", func(t *testing.T) {
		c := valid()
		c.Environment = Production
		assert.Error(t, c.Validate())

		c.Payment.AccessToken = "tok"
		assert.NoError(t, c.Validate())
	})

	t.Run("rejects unknown referral policy", func(t *testing.T) {
		c := valid()
		c.Referral.Policy = "lottery"
		assert.Error(t, c.Validate())
	})
}
