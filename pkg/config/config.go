package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "snapgro"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "SNAPGRO_APP_ENV"
	EnvPort       = "SNAPGRO_APP_PORT"
	EnvDBDSN      = "SNAPGRO_DB_DSN"
	EnvDBHost     = "SNAPGRO_DB_HOST"
	EnvDBUser     = "SNAPGRO_DB_USER"
	EnvDBName     = "SNAPGRO_DB_NAME"
	EnvRedisURL   = "SNAPGRO_REDIS_URL"
	EnvJWTSecret  = "SNAPGRO_JWT_SECRET"
	EnvJWTIssuer  = "SNAPGRO_JWT_ISSUER"
	EnvJWTExpMins = "SNAPGRO_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Session       SessionConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SNAPGRO_APP_ENV" required:"true"`
	Port         string `envconfig:"SNAPGRO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SNAPGRO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SNAPGRO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SNAPGRO_DB_DSN"`
	Driver string `envconfig:"SNAPGRO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SNAPGRO_DB_HOST"`
	LegacyPort     int    `envconfig:"SNAPGRO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SNAPGRO_DB_USER"`
	LegacyPassword string `envconfig:"SNAPGRO_DB_PASSWORD"`
	LegacyName     string `envconfig:"SNAPGRO_DB_NAME"`
	LegacySSLMode  string `envconfig:"SNAPGRO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SNAPGRO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SNAPGRO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SNAPGRO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SNAPGRO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SNAPGRO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SNAPGRO_REDIS_ADDR"`
	Password     string        `envconfig:"SNAPGRO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SNAPGRO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SNAPGRO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SNAPGRO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SNAPGRO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SNAPGRO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SNAPGRO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SNAPGRO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SNAPGRO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SNAPGRO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SNAPGRO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SNAPGRO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SNAPGRO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SNAPGRO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SNAPGRO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SNAPGRO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SNAPGRO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// SessionConfig tunes the in-memory storefront sessions.
type SessionConfig struct {
	SplashDelay    time.Duration `envconfig:"SNAPGRO_SESSION_SPLASH_DELAY" default:"3s"`
	IdleTTL        time.Duration `envconfig:"SNAPGRO_SESSION_IDLE_TTL" default:"12h"`
	SweepInterval  time.Duration `envconfig:"SNAPGRO_SESSION_SWEEP_INTERVAL" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"SNAPGRO_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

// CheckoutConfig holds the fixed fee schedule the checkout screen layers
// on top of the cart subtotal. The cart itself never owns fee policy.
type CheckoutConfig struct {
	DeliveryFee string `envconfig:"SNAPGRO_CHECKOUT_DELIVERY_FEE" default:"2.99"`
	ServiceFee  string `envconfig:"SNAPGRO_CHECKOUT_SERVICE_FEE" default:"1.49"`
	TaxRate     string `envconfig:"SNAPGRO_CHECKOUT_TAX_RATE" default:"0.08"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SNAPGRO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SNAPGRO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
