package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Seed   SeedConfig
	Intent IntentConfig
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
	Env          string `envconfig:"UJENZIPAY_APP_ENV" default:"dev"`
	Port         string `envconfig:"UJENZIPAY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"UJENZIPAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UJENZIPAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"UJENZIPAY_DB_DSN"`

	Host     string `envconfig:"UJENZIPAY_DB_HOST"`
	Port     int    `envconfig:"UJENZIPAY_DB_PORT" default:"5432"`
	User     string `envconfig:"UJENZIPAY_DB_USER"`
	Password string `envconfig:"UJENZIPAY_DB_PASSWORD"`
	Name     string `envconfig:"UJENZIPAY_DB_NAME"`
	SSLMode  string `envconfig:"UJENZIPAY_DB_SSLMODE" default:"disable"`

	AutoMigrate bool `envconfig:"UJENZIPAY_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"UJENZIPAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"UJENZIPAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"UJENZIPAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"UJENZIPAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either UJENZIPAY_DB_DSN or UJENZIPAY_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

// RedisConfig backs the idempotency guard on mutating payment endpoints.
// Leaving the address empty disables the guard.
type RedisConfig struct {
	Address      string        `envconfig:"UJENZIPAY_REDIS_ADDR"`
	Password     string        `envconfig:"UJENZIPAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"UJENZIPAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UJENZIPAY_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"UJENZIPAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UJENZIPAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UJENZIPAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type SeedConfig struct {
	Enabled bool `envconfig:"UJENZIPAY_SEED_ON_MIGRATE" default:"false"`
}

// IntentConfig tunes the worker that drains receipt side-effect intents.
type IntentConfig struct {
	BatchSize    int           `envconfig:"UJENZIPAY_INTENT_BATCH_SIZE" default:"50"`
	PollInterval time.Duration `envconfig:"UJENZIPAY_INTENT_POLL_INTERVAL" default:"500ms"`
	MaxAttempts  int           `envconfig:"UJENZIPAY_INTENT_MAX_ATTEMPTS" default:"10"`
}
