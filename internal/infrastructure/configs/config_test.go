package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Mongo.Database != "hirebuddy" {
		t.Errorf("Mongo.Database = %q, want hirebuddy", cfg.Mongo.Database)
	}
	if cfg.Redis.PendingTTL != 10*time.Minute {
		t.Errorf("Redis.PendingTTL = %v, want 10m", cfg.Redis.PendingTTL)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 1h", cfg.Auth.TokenTTL)
	}
	if cfg.RateLimiter.MaxRatePerSecond != 10 || cfg.RateLimiter.MaxBurst != 20 {
		t.Errorf("rate limiter defaults = %d/%d, want 10/20",
			cfg.RateLimiter.MaxRatePerSecond, cfg.RateLimiter.MaxBurst)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
http:
  port: 9090
mongo:
  database: hirebuddy_test
auth:
  secret: file-secret
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("HTTP.Port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Mongo.Database != "hirebuddy_test" {
		t.Errorf("Mongo.Database = %q, want hirebuddy_test", cfg.Mongo.Database)
	}
	if cfg.Auth.Secret != "file-secret" {
		t.Errorf("Auth.Secret = %q, want file-secret", cfg.Auth.Secret)
	}
	// Untouched keys keep their defaults.
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want the default", cfg.Redis.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("RATE_LIMIT_MAX_BURST", "50")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("HTTP.Port = %d, want 7070", cfg.HTTP.Port)
	}
	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("Mongo.URI = %q, want the env value", cfg.Mongo.URI)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("Auth.Secret = %q, want env-secret", cfg.Auth.Secret)
	}
	if cfg.RateLimiter.MaxBurst != 50 {
		t.Errorf("RateLimiter.MaxBurst = %d, want 50", cfg.RateLimiter.MaxBurst)
	}
}

func TestLoadRejectsEmptyAuthSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(""); err == nil {
		t.Fatal("Load accepted an empty auth secret")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("Load accepted a missing config file")
	}
}
