package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string `env:"PORT"       envDefault:"8000"`
	Env  string `env:"SERVER_ENV" envDefault:"development"`
}

// DatabaseConfig describes the blueprint store.
// An empty URL selects the embedded SQLite store at SQLitePath.
type DatabaseConfig struct {
	URL          string        `env:"DATABASE_URL"`
	Name         string        `env:"DATABASE_NAME"`
	SQLitePath   string        `env:"DATABASE_SQLITE_PATH"  envDefault:"tokenforge.db"`
	PingTimeout  time.Duration `env:"DATABASE_PING_TIMEOUT" envDefault:"5s"`
	MaxOpenConns int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Driver returns which store backend the configuration selects.
func (c DatabaseConfig) Driver() string {
	if c.URL != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// RedisConfig holds Redis configuration. Redis is optional; an empty URL disables it.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Password string `env:"REDIS_PASSWORD"`
}

// CORSConfig holds the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"token_forge"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
