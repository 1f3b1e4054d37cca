package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "QUOTEHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "QUOTEHUB_APP_ENV"
	EnvPort      = "QUOTEHUB_APP_PORT"
	EnvDBDSN     = "QUOTEHUB_DB_DSN"
	EnvDBHost    = "QUOTEHUB_DB_HOST"
	EnvDBUser    = "QUOTEHUB_DB_USER"
	EnvDBName    = "QUOTEHUB_DB_NAME"
	EnvRedisURL  = "QUOTEHUB_REDIS_URL"
	EnvJWTSecret = "QUOTEHUB_JWT_SECRET"
	EnvJWTIssuer = "QUOTEHUB_JWT_ISSUER"
	EnvJWTExp    = "QUOTEHUB_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
