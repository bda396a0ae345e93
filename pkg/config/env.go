package config

const EnvPrefix = "WANDERMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

const DefaultSQLiteDSN = "file:wandermart.db?_busy_timeout=5000"

const (
	EnvAppEnv           = "WANDERMART_APP_ENV"
	EnvLogLevel         = "WANDERMART_LOG_LEVEL"
	EnvStoreBackend     = "WANDERMART_STORE_BACKEND"
	EnvStoreMaxAttempts = "WANDERMART_STORE_MAX_ATTEMPTS"
	EnvDBDSN            = "WANDERMART_DB_DSN"
	EnvDBHost           = "WANDERMART_DB_HOST"
	EnvDBUser           = "WANDERMART_DB_USER"
	EnvDBPassword       = "WANDERMART_DB_PASSWORD"
	EnvDBName           = "WANDERMART_DB_NAME"
	EnvRedisURL         = "WANDERMART_REDIS_URL"
	EnvJWTSecret        = "WANDERMART_JWT_SECRET"
	EnvJWTIssuer        = "WANDERMART_JWT_ISSUER"
	EnvSessionTTL       = "WANDERMART_SESSION_TTL_MINUTES"
	EnvMinReviews       = "WANDERMART_MIN_REVIEWS_FOR_RATING"
	EnvMaxUploadMB      = "WANDERMART_MAX_UPLOAD_MB"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
