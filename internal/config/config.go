package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/vstore/internal/kvstore/postgres"
	"github.com/osse101/vstore/internal/logger"
)

// Config holds the application configuration
type Config struct {
	Environment    string `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev staging production"`
	LogLevel       string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat      string `env:"LOG_FORMAT" validate:"omitempty,oneof=text json"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"vstore"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`

	Port   int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	APIKey string `env:"API_KEY" validate:"required"` // API key for authentication
	// TrustedProxies lists peer IPs whose X-Forwarded-For is honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,ip"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory" validate:"oneof=memory sqlite postgres"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/vstore.db" validate:"required_if=StorageDriver sqlite"`

	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432" validate:"numeric"`
	DBName        string        `env:"DB_NAME" envDefault:"vstore"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"10" validate:"min=1"`
	DBMaxIdleTime time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	DBMaxLifetime time.Duration `env:"DB_MAX_LIFETIME" envDefault:"1h"`

	CacheSize int           `env:"KV_CACHE_SIZE" envDefault:"1024" validate:"min=0"`
	CacheTTL  time.Duration `env:"KV_CACHE_TTL" envDefault:"5m"`

	CatalogPath     string `env:"CATALOG_PATH" envDefault:"configs/store_assets.json" validate:"required"`
	CatalogValidate bool   `env:"CATALOG_VALIDATE" envDefault:"true"`

	MarketMode    string `env:"MARKET_MODE" envDefault:"simulated" validate:"oneof=simulated disabled"`
	MarketWorkers int    `env:"MARKET_WORKERS" envDefault:"2" validate:"min=1"`
	MarketQueue   int    `env:"MARKET_QUEUE" envDefault:"64" validate:"min=1"`
	MarketOutcome string `env:"MARKET_OUTCOME" envDefault:"purchased" validate:"oneof=purchased cancelled refunded failed"`
}

var validate = newValidator()

// newValidator reports fields by their environment variable name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})
	return v
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", describe(err))
	}
	return cfg, nil
}

// describe names the environment variables behind validation failures
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if fe.Tag() == "required" {
			msgs = append(msgs, name+" must be set")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s validation", name, fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// PoolConfig returns the PostgreSQL pool sizing
func (c *Config) PoolConfig() postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxConns:    c.DBMaxConns,
		MaxIdleTime: c.DBMaxIdleTime,
		MaxLifetime: c.DBMaxLifetime,
	}
}

// LoggerConfig returns the logger settings
func (c *Config) LoggerConfig() logger.Config {
	lc := logger.ForEnvironment(c.Environment).WithOverrides(c.LogLevel, c.LogFormat)
	lc.ServiceName = c.ServiceName
	lc.Version = c.ServiceVersion
	return lc
}
