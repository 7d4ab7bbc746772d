package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"AF_APP_ENV" required:"true"`
	Port         string `envconfig:"AF_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the remote catalog database. The DSN is deliberately
// optional: when it is empty the service runs in fallback mode, serving the
// bundled dataset read-only.
type DBConfig struct {
	DSN    string `envconfig:"AF_DB_DSN"`
	Driver string `envconfig:"AF_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"AF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Configured reports whether a remote database was provided.
func (db DBConfig) Configured() bool {
	return strings.TrimSpace(db.DSN) != ""
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DBDriverPostgres, DBDriverSQLite:
		return nil
	}
	return fmt.Errorf("unsupported db driver %q", db.Driver)
}

// RedisConfig describes the optional list-snapshot cache. An empty URL
// disables caching entirely.
type RedisConfig struct {
	URL          string        `envconfig:"AF_REDIS_URL"`
	PoolSize     int           `envconfig:"AF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AF_REDIS_WRITE_TIMEOUT" default:"5s"`
	SnapshotTTL  time.Duration `envconfig:"AF_REDIS_SNAPSHOT_TTL" default:"15m"`
}

// Configured reports whether the cache should be wired.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"AF_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AF_JWT_ISSUER" default:"authenticfurniture"`
	ExpirationMinutes int    `envconfig:"AF_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type CatalogConfig struct {
	DefaultPageSize int `envconfig:"AF_CATALOG_DEFAULT_PAGE_SIZE" default:"50"`
	MaxImageCount   int `envconfig:"AF_CATALOG_MAX_IMAGE_COUNT" default:"8"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AF_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AF_CORS_ALLOWED_ORIGINS" default:"*"`
}
