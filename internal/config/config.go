// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/storage/postgres"
)

// Config holds all runtime settings.
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     int    `envconfig:"APP_PORT" default:"8080"`

	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns      int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns      int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	DBMaxConnIdle   time.Duration `envconfig:"DB_MAX_CONN_IDLE" default:"30m"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	// SecretKey signs the flash cookie
	SecretKey string `envconfig:"SECRET_KEY" default:"stockmaster-dev-secret"`

	// Currency is the label printed after amounts
	Currency string `envconfig:"CURRENCY" default:"FCFA"`

	ProductDeletePolicy string `envconfig:"PRODUCT_DELETE_POLICY" default:"restrict"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("APP_PORT out of range: %d", c.Port)
	}
	if c.DBMaxConns < c.DBMinConns {
		return fmt.Errorf("DB_MAX_CONNS (%d) is below DB_MIN_CONNS (%d)", c.DBMaxConns, c.DBMinConns)
	}
	if _, err := product.ParseDeletePolicy(c.ProductDeletePolicy); err != nil {
		return err
	}
	if c.IsProduction() && c.SecretKey == "stockmaster-dev-secret" {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DeletePolicy returns the parsed product delete policy.
func (c *Config) DeletePolicy() product.DeletePolicy {
	p, _ := product.ParseDeletePolicy(c.ProductDeletePolicy)
	return p
}

// Pool builds the pgx pool configuration.
func (c *Config) Pool() postgres.PoolConfig {
	pc := postgres.DefaultPoolConfig(c.DatabaseURL)
	pc.MaxConns = c.DBMaxConns
	pc.MinConns = c.DBMinConns
	pc.MaxConnIdleTime = c.DBMaxConnIdle
	return pc
}
