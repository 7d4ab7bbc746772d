package config

// EnvPrefix is intentionally empty; every variable carries the explicit AF_
// prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Environment variable names shared with tests and tooling.
const (
	EnvAppEnv    = "AF_APP_ENV"
	EnvPort      = "AF_APP_PORT"
	EnvDBDSN     = "AF_DB_DSN"
	EnvDBDriver  = "AF_DB_DRIVER"
	EnvRedisURL  = "AF_REDIS_URL"
	EnvJWTSecret = "AF_JWT_SECRET"
	EnvJWTIssuer = "AF_JWT_ISSUER"
)
