package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "borcelle"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Checkout     CheckoutConfig
	Razorpay     RazorpayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BORCELLE_APP_ENV" required:"true"`
	Port         string `envconfig:"BORCELLE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BORCELLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BORCELLE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"BORCELLE_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"BORCELLE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BORCELLE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BORCELLE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BORCELLE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type CheckoutConfig struct {
	Currency string `envconfig:"BORCELLE_CHECKOUT_CURRENCY" default:"INR"`
}

// RazorpayConfig carries the gateway credentials. All three secrets are
// startup requirements, not per-request concerns.
type RazorpayConfig struct {
	KeyID         string `envconfig:"BORCELLE_RAZORPAY_KEY_ID" required:"true"`
	KeySecret     string `envconfig:"BORCELLE_RAZORPAY_KEY_SECRET" required:"true"`
	WebhookSecret string `envconfig:"BORCELLE_RAZORPAY_WEBHOOK_SECRET" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BORCELLE_AUTO_MIGRATE" default:"false"`
}
