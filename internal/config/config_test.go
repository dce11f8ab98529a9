package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"APP_PORT", "LOG_LEVEL", "BACKEND_URL", "BACKEND_TIMEOUT", "STORAGE_DRIVER",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "DATABASE_DSN",
	"COOKIE_SECURE", "AUTH_RATE_LIMIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tunr.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppPort != "3000" {
		t.Errorf("AppPort = %q, want 3000", cfg.AppPort)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Errorf("StorageDriver = %q, want memory", cfg.StorageDriver)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should default to true")
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Errorf("BackendTimeout = %v, want 10s", cfg.BackendTimeout)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
app_port = "4000"
backend_url = "http://api.internal:8000/"
storage_driver = "redis"
redis_addr = "localhost:6379"
auth_rate_limit = 3
`)
	t.Setenv("APP_PORT", "5000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppPort != "5000" {
		t.Errorf("AppPort = %q, want env override 5000", cfg.AppPort)
	}
	if cfg.BackendURL != "http://api.internal:8000" {
		t.Errorf("BackendURL = %q, trailing slash should be trimmed", cfg.BackendURL)
	}
	if cfg.StorageDriver != StorageRedis || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("redis settings not loaded from file: %+v", cfg)
	}
	if cfg.AuthRateLimit != 3 {
		t.Errorf("AuthRateLimit = %d, want 3", cfg.AuthRateLimit)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("AUTH_RATE_LIMIT", "lots")
	t.Setenv("BACKEND_TIMEOUT", "soon")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("invalid bool should fall back to default true")
	}
	if cfg.AuthRateLimit != 10 {
		t.Errorf("AuthRateLimit = %d, want default 10", cfg.AuthRateLimit)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Errorf("BackendTimeout = %v, want default", cfg.BackendTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory ok", func(c *Config) {}, ""},
		{"redis without addr", func(c *Config) { c.StorageDriver = StorageRedis }, "REDIS_ADDR"},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = StoragePostgres }, "DATABASE_DSN"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "etcd" }, "unknown storage driver"},
		{"negative rate", func(c *Config) { c.AuthRateLimit = -1 }, "AUTH_RATE_LIMIT"},
		{"missing backend", func(c *Config) { c.BackendURL = "" }, "BACKEND_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "app_port = ")

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}
