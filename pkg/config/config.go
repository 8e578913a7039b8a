package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv            = "PHOTOSYNTHESIS_APP_ENV"
	EnvPort              = "PHOTOSYNTHESIS_APP_PORT"
	EnvDBDriver          = "PHOTOSYNTHESIS_DB_DRIVER"
	EnvDBDSN             = "PHOTOSYNTHESIS_DB_DSN"
	EnvRedisURL          = "PHOTOSYNTHESIS_REDIS_URL"
	EnvShopifyAPIKey     = "PHOTOSYNTHESIS_SHOPIFY_API_KEY"
	EnvShopifyAPISecret  = "PHOTOSYNTHESIS_SHOPIFY_API_SECRET"
	EnvShopifyAdminToken = "PHOTOSYNTHESIS_SHOPIFY_ADMIN_TOKEN"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Shopify       ShopifyConfig
	ScanRateLimit ScanRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHOTOSYNTHESIS_APP_ENV" required:"true"`
	Port         string `envconfig:"PHOTOSYNTHESIS_APP_PORT" default:"8081"`
	LogLevel     string `envconfig:"PHOTOSYNTHESIS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHOTOSYNTHESIS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"PHOTOSYNTHESIS_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"PHOTOSYNTHESIS_DB_DSN" default:"database.sqlite"`

	MaxOpenConns    int           `envconfig:"PHOTOSYNTHESIS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHOTOSYNTHESIS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHOTOSYNTHESIS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHOTOSYNTHESIS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func (db DBConfig) validate() error {
	switch db.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q (expected %s or %s)", db.Driver, DriverSQLite, DriverPostgres)
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PHOTOSYNTHESIS_REDIS_URL"`
	PoolSize     int           `envconfig:"PHOTOSYNTHESIS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHOTOSYNTHESIS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHOTOSYNTHESIS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHOTOSYNTHESIS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHOTOSYNTHESIS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis deployment is configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

// ShopifyConfig carries the embedded-app credentials. APIKey/APISecret come
// from the Partners dashboard and verify App Bridge session tokens; AdminToken
// authenticates Admin GraphQL calls.
type ShopifyConfig struct {
	APIKey     string `envconfig:"PHOTOSYNTHESIS_SHOPIFY_API_KEY" required:"true"`
	APISecret  string `envconfig:"PHOTOSYNTHESIS_SHOPIFY_API_SECRET" required:"true"`
	AdminToken string `envconfig:"PHOTOSYNTHESIS_SHOPIFY_ADMIN_TOKEN" required:"true"`
	APIVersion string `envconfig:"PHOTOSYNTHESIS_SHOPIFY_API_VERSION" default:"2023-07"`
}

type ScanRateLimitConfig struct {
	Window  time.Duration `envconfig:"PHOTOSYNTHESIS_SCAN_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"PHOTOSYNTHESIS_SCAN_RATE_LIMIT_IP_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PHOTOSYNTHESIS_AUTO_MIGRATE" default:"false"`
}
