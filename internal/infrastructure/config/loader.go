package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths lists the directories searched for the per-environment
// yaml file, relative to the process working directory.
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths lists the locations searched for a .env file.
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration for the current environment. A missing
// yaml file is tolerated, defaults plus environment variables then carry
// the whole configuration.
func LoadConfig() (*Config, error) {
	loadDotEnv()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnv loads the first readable .env file, if any. Deployments
// that configure through real environment variables have none.
func loadDotEnv() {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

// setDefaults covers every knob that has a sensible out-of-the-box value
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)     // seconds
	v.SetDefault("server.writeTimeout", 15)    // seconds
	v.SetDefault("server.idleTimeout", 60)     // seconds
	v.SetDefault("server.shutdownTimeout", 10) // seconds
	v.SetDefault("server.allowedOrigins", []string{})

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes

	v.SetDefault("logger.level", "info")

	v.SetDefault("auth.tokenTTL", 72) // hours
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("payment.baseURL", "https://api.mercadopago.com")
	v.SetDefault("payment.timeout", 15) // seconds

	v.SetDefault("mail.port", 587)

	v.SetDefault("wallet.minDeposit", "70.00")
	v.SetDefault("wallet.minWithdrawal", "45.00")

	v.SetDefault("referral.policy", "flat")
	v.SetDefault("referral.firstBps", 3700)
	v.SetDefault("referral.subsequentBps", 100)
	v.SetDefault("referral.tieredBps", []int64{1000, 2000, 2500})

	v.SetDefault("yield.sweepEnabled", false)
	v.SetDefault("yield.sweepSchedule", "0 3 * * *")
}

// getEnvironment reads BV_ENV, defaulting to development
func getEnvironment() string {
	env := strings.ToLower(os.Getenv("BV_ENV"))
	if env == "" {
		return Development
	}
	return env
}

// processEnvOverrides forces environment variables to win over yaml for
// the settings that normally arrive through the deployment environment
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"database.host":       "BV_DB_HOST",
		"database.port":       "BV_DB_PORT",
		"database.username":   "BV_DB_USERNAME",
		"database.password":   "BV_DB_PASSWORD",
		"database.database":   "BV_DB_NAME",
		"database.sslMode":    "BV_DB_SSL_MODE",
		"server.host":         "BV_SERVER_HOST",
		"server.port":         "BV_SERVER_PORT",
		"logger.level":        "BV_LOGGER_LEVEL",
		"auth.jwtSecret":      "BV_AUTH_JWT_SECRET",
		"payment.accessToken": "BV_PAYMENT_ACCESS_TOKEN",
		"payment.payerEmail":  "BV_PAYMENT_PAYER_EMAIL",
		"mail.host":           "BV_MAIL_HOST",
		"mail.port":           "BV_MAIL_PORT",
		"mail.username":       "BV_MAIL_USERNAME",
		"mail.password":       "BV_MAIL_PASSWORD",
		"mail.from":           "BV_MAIL_FROM",
		"mail.to":             "BV_MAIL_TO",
	}

	for key, envName := range overrides {
		if value := os.Getenv(envName); value != "" {
			v.Set(key, value)
		}
	}
}

// processDurations scales the raw numeric values into durations. The
// yaml carries plain numbers, the unit is fixed per setting.
func processDurations(cfg *Config) {
	cfg.Server.ReadTimeout *= time.Second
	cfg.Server.WriteTimeout *= time.Second
	cfg.Server.IdleTimeout *= time.Second
	cfg.Server.ShutdownTimeout *= time.Second

	cfg.Database.ConnMaxLifetime *= time.Minute
	cfg.Database.ConnMaxIdleTime *= time.Minute

	cfg.Auth.TokenTTL *= time.Hour
	cfg.Payment.Timeout *= time.Second
}
