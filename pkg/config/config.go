package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Stock         StockConfig
	Bootstrap     BootstrapConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load parses the environment. A missing or incomplete database
// configuration is reported through DB.ConfigError rather than failing the
// whole load, so the caller can degrade persistence-backed features instead
// of crashing.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DB.ensureDSN()
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ESCOLAR_APP_ENV" default:"dev"`
	Port         string   `envconfig:"ESCOLAR_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"ESCOLAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ESCOLAR_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ESCOLAR_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESCOLAR_DB_DSN"`
	Driver string `envconfig:"ESCOLAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ESCOLAR_DB_HOST"`
	LegacyPort     int    `envconfig:"ESCOLAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ESCOLAR_DB_USER"`
	LegacyPassword string `envconfig:"ESCOLAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"ESCOLAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"ESCOLAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESCOLAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESCOLAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESCOLAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESCOLAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// ConfigError is set when neither a DSN nor the full legacy variable
	// set was provided. The API boots in degraded mode in that case.
	ConfigError error `ignored:"true"`
}

// Ready reports whether the database connection can even be attempted.
func (db DBConfig) Ready() bool {
	return db.ConfigError == nil && db.DSN != ""
}

func (db *DBConfig) ensureDSN() {
	if db.DSN != "" {
		return
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
		db.ConfigError = fmt.Errorf("database not configured: set ESCOLAR_DB_DSN or %s", strings.Join(missing, ", "))
		return
	}

	db.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(db.LegacyUser),
		url.QueryEscape(db.LegacyPassword),
		db.LegacyHost,
		db.LegacyPort,
		db.LegacyName,
		db.LegacySSLMode,
	)
}

type RedisConfig struct {
	URL          string        `envconfig:"ESCOLAR_REDIS_URL"`
	Address      string        `envconfig:"ESCOLAR_REDIS_ADDR"`
	Password     string        `envconfig:"ESCOLAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"ESCOLAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ESCOLAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ESCOLAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ESCOLAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ESCOLAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ESCOLAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. Login
// rate limiting is skipped when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"ESCOLAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ESCOLAR_JWT_ISSUER" default:"escolar-backend"`
	ExpirationMinutes int    `envconfig:"ESCOLAR_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the configured access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ESCOLAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ESCOLAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ESCOLAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ESCOLAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ESCOLAR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ESCOLAR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"ESCOLAR_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ESCOLAR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// StockConfig gates the stock ledger's defensive behaviors. Both default
// off to match the historical permissive semantics.
type StockConfig struct {
	EnforceNonNegative bool `envconfig:"ESCOLAR_STOCK_ENFORCE_NON_NEGATIVE" default:"false"`
	RequireEntry       bool `envconfig:"ESCOLAR_STOCK_REQUIRE_ENTRY" default:"false"`
}

// BootstrapConfig feeds the explicit admin bootstrap command. The password
// is never defaulted; operators must supply one.
type BootstrapConfig struct {
	AdminUsername string `envconfig:"ESCOLAR_BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ESCOLAR_BOOTSTRAP_ADMIN_PASSWORD"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESCOLAR_AUTO_MIGRATE" default:"false"`
}
