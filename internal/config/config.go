package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	AppPort  string `toml:"app_port"`
	LogLevel string `toml:"log_level"`

	// BackendURL is the Tunr REST API base, e.g. http://127.0.0.1:8000
	BackendURL     string        `toml:"backend_url"`
	BackendTimeout time.Duration `toml:"backend_timeout"`

	// StorageDriver selects where per-client storage lives.
	StorageDriver string `toml:"storage_driver"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	DatabaseDSN string `toml:"database_dsn"`

	CookieSecure bool `toml:"cookie_secure"`

	// Requests per minute per client IP on login and signup; 0 disables.
	AuthRateLimit int `toml:"auth_rate_limit"`
}

func defaults() Config {
	return Config{
		AppPort:        "3000",
		LogLevel:       "info",
		BackendURL:     "http://127.0.0.1:8000",
		BackendTimeout: 10 * time.Second,
		StorageDriver:  StorageMemory,
		CookieSecure:   true,
		AuthRateLimit:  10,
	}
}

// Load builds the configuration from defaults, an optional TOML file and
// the environment, in that order of precedence (environment wins). A .env
// file in the working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.AppPort = getEnv("APP_PORT", cfg.AppPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.BackendURL = strings.TrimRight(getEnv("BACKEND_URL", cfg.BackendURL), "/")
	cfg.BackendTimeout = getEnvDuration("BACKEND_TIMEOUT", cfg.BackendTimeout)

	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", cfg.StorageDriver))

	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)

	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)

	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", cfg.CookieSecure)
	cfg.AuthRateLimit = getEnvInt("AUTH_RATE_LIMIT", cfg.AuthRateLimit)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the selected storage driver has what it needs.
func (c Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("config: APP_PORT is required")
	}
	if c.BackendURL == "" {
		return errors.New("config: BACKEND_URL is required")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StorageRedis:
		if c.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR is required for redis storage")
		}
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("config: DATABASE_DSN is required for postgres storage")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}

	if c.AuthRateLimit < 0 {
		return errors.New("config: AUTH_RATE_LIMIT must not be negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
