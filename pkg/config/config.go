package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Seed         SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.resolveBackend(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PLOTDESK_APP_ENV" default:"dev"`
	Port         string `envconfig:"PLOTDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PLOTDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PLOTDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the active persistence backend. The choice between the
// managed Postgres database and the local SQLite file is made exactly once, at
// load time, from the presence of the Postgres connection settings.
type DBConfig struct {
	DSN    string `envconfig:"PLOTDESK_DB_DSN"`
	Driver string `envconfig:"PLOTDESK_DB_DRIVER"`

	Host     string `envconfig:"PLOTDESK_DB_HOST"`
	Port     int    `envconfig:"PLOTDESK_DB_PORT" default:"5432"`
	User     string `envconfig:"PLOTDESK_DB_USER"`
	Password string `envconfig:"PLOTDESK_DB_PASSWORD"`
	Name     string `envconfig:"PLOTDESK_DB_NAME"`
	SSLMode  string `envconfig:"PLOTDESK_DB_SSLMODE" default:"disable"`

	// SQLitePath is the local database file used when no Postgres settings are
	// configured.
	SQLitePath string `envconfig:"PLOTDESK_DB_PATH" default:"plotdesk.db"`

	MaxOpenConns    int           `envconfig:"PLOTDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PLOTDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PLOTDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PLOTDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsPostgres reports whether the resolved backend is the managed Postgres database.
func (db DBConfig) IsPostgres() bool {
	return db.Driver == DriverPostgres
}

// IsSQLite reports whether the resolved backend is the local SQLite file.
func (db DBConfig) IsSQLite() bool {
	return db.Driver == DriverSQLite
}

func (db *DBConfig) resolveBackend() error {
	switch db.Driver {
	case "":
		// resolved below from the configured values
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q (expected %s or %s)", db.Driver, DriverPostgres, DriverSQLite)
	}

	if db.DSN != "" || db.Driver == DriverPostgres || db.Host != "" {
		db.Driver = DriverPostgres
		return db.ensureDSN()
	}

	db.Driver = DriverSQLite
	if db.SQLitePath == "" {
		return fmt.Errorf("%s is required for the sqlite backend", EnvDBPath)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range postgresEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

// RedisConfig is optional; when no URL or address is configured the
// idempotency guard is simply disabled.
type RedisConfig struct {
	URL          string        `envconfig:"PLOTDESK_REDIS_URL"`
	Address      string        `envconfig:"PLOTDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PLOTDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PLOTDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PLOTDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PLOTDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PLOTDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PLOTDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PLOTDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PLOTDESK_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PLOTDESK_AUTO_MIGRATE" default:"true"`
	AutoSeed    bool `envconfig:"PLOTDESK_AUTO_SEED" default:"true"`
}

type SeedConfig struct {
	PlotCount int    `envconfig:"PLOTDESK_SEED_PLOT_COUNT" default:"200"`
	PlotPrice string `envconfig:"PLOTDESK_SEED_PLOT_PRICE" default:"65800"`
}
