package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Catalog  CatalogConfig
	Orders   OrdersConfig
	Media    MediaConfig
	Seed     SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if cfg.Store.UsesSQL() {
		if err := cfg.DB.ensureDSN(cfg.Store.Backend); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WANDERMART_APP_ENV" default:"dev"`
	ServiceName  string `envconfig:"WANDERMART_SERVICE_NAME" default:"wandermart"`
	LogLevel     string `envconfig:"WANDERMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WANDERMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the durable key-value backend.
type StoreConfig struct {
	Backend     string `envconfig:"WANDERMART_STORE_BACKEND" default:"sqlite"`
	MaxAttempts int    `envconfig:"WANDERMART_STORE_MAX_ATTEMPTS" default:"8"`
	AutoMigrate bool   `envconfig:"WANDERMART_STORE_AUTO_MIGRATE" default:"true"`
}

// UsesSQL reports whether the configured backend goes through the SQL client.
func (s StoreConfig) UsesSQL() bool {
	return s.Backend == StoreBackendSQLite || s.Backend == StoreBackendPostgres
}

func (s StoreConfig) validate() error {
	switch s.Backend {
	case StoreBackendSQLite, StoreBackendPostgres, StoreBackendRedis:
	default:
		return fmt.Errorf("%s must be one of sqlite, postgres, redis (got %q)", EnvStoreBackend, s.Backend)
	}
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("%s must be positive", EnvStoreMaxAttempts)
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"WANDERMART_DB_DSN"`

	LegacyHost     string `envconfig:"WANDERMART_DB_HOST"`
	LegacyPort     int    `envconfig:"WANDERMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WANDERMART_DB_USER"`
	LegacyPassword string `envconfig:"WANDERMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"WANDERMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"WANDERMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WANDERMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WANDERMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WANDERMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WANDERMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WANDERMART_REDIS_URL"`
	Address      string        `envconfig:"WANDERMART_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"WANDERMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"WANDERMART_REDIS_DB" default:"0"`
	KeyPrefix    string        `envconfig:"WANDERMART_REDIS_KEY_PREFIX" default:"wm"`
	PoolSize     int           `envconfig:"WANDERMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WANDERMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WANDERMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WANDERMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WANDERMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WANDERMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WANDERMART_JWT_ISSUER" default:"wandermart"`
	SessionTTLMinutes int    `envconfig:"WANDERMART_SESSION_TTL_MINUTES" default:"10080"`
}

// SessionTTL returns how long an established session stays valid.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WANDERMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WANDERMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WANDERMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WANDERMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WANDERMART_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	MinReviewsForRating    int    `envconfig:"WANDERMART_MIN_REVIEWS_FOR_RATING" default:"5"`
	DefaultAttractionImage string `envconfig:"WANDERMART_DEFAULT_ATTRACTION_IMAGE" default:"https://picsum.photos/800/600?random=99"`
	DefaultProductImage    string `envconfig:"WANDERMART_DEFAULT_PRODUCT_IMAGE" default:"https://picsum.photos/400/400"`
	DefaultAvatarBase      string `envconfig:"WANDERMART_DEFAULT_AVATAR_BASE" default:"https://i.pravatar.cc/150?u="`
	DefaultStoreName       string `envconfig:"WANDERMART_DEFAULT_STORE_NAME" default:"My Store"`
}

type OrdersConfig struct {
	IDPrefix      string `envconfig:"WANDERMART_ORDER_ID_PREFIX" default:"WM"`
	IDMaxAttempts int    `envconfig:"WANDERMART_ORDER_ID_MAX_ATTEMPTS" default:"10"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"WANDERMART_MAX_UPLOAD_MB" default:"5"`
}

// MaxUploadBytes converts the configured limit to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 0
	}
	return int64(m.MaxUploadMB) << 20
}

type SeedConfig struct {
	Enabled         bool   `envconfig:"WANDERMART_SEED_ENABLED" default:"true"`
	DefaultPassword string `envconfig:"WANDERMART_SEED_PASSWORD" default:"password123"`
}

func (db *DBConfig) ensureDSN(backend string) error {
	if db.DSN != "" {
		return nil
	}
	if backend == StoreBackendSQLite {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
