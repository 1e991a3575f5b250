package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreDriver selects which adapter backs the credential store.
type SessionStoreDriver string

const (
	// SessionStoreRedis keeps credentials in Redis (the default).
	SessionStoreRedis SessionStoreDriver = "redis"
	// SessionStorePostgres keeps credentials in PostgreSQL.
	SessionStorePostgres SessionStoreDriver = "postgres"
	// SessionStoreMemory keeps credentials in process memory (dev only).
	SessionStoreMemory SessionStoreDriver = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreDriver.
func (d *SessionStoreDriver) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "postgres", "memory":
		*d = SessionStoreDriver(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreDriver: %q (valid options: redis, postgres, memory)", v)
	}
}

// DBConfig contains PostgreSQL configuration for the postgres session store.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"storefront"`
	Password string `env:"PASSWORD" envDefault:"storefront"`
	Name     string `env:"NAME"     envDefault:"storefront"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// DSN renders the pgx connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// RedisConfig contains Redis configuration for sessions and the catalog cache.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	// Driver selects the credential store backend.
	Driver SessionStoreDriver `env:"STORE_DRIVER" envDefault:"redis"`

	// TTL is how long stored credentials live without activity.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Driver == "" {
		s.Driver = SessionStoreRedis
	}
	if s.TTL <= 0 {
		s.TTL = 720 * time.Hour
	}
}

// CacheConfig contains catalog cache configuration (Redis-based).
type CacheConfig struct {
	// Enabled turns the catalog cache on. When off, every catalog read
	// goes to the backend.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// TTL is how long catalog list payloads are served from cache.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}
