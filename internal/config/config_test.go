package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "JWT_SECRET", "JWT_TTL", "RABBITMQ_URL", "BODY_LIMIT",
		"RATE_LIMIT_PER_WINDOW", "RATE_LIMIT_WINDOW", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != EnvDevelopment || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 8*time.Hour {
		t.Fatalf("expected 8h ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.HTTP.RateLimit != 120 || cfg.HTTP.RateWindow != 15*time.Minute {
		t.Fatalf("unexpected rate limit %d/%s", cfg.HTTP.RateLimit, cfg.HTTP.RateWindow)
	}
	if cfg.HTTP.BodyLimit != "10K" {
		t.Fatalf("expected 10K body limit, got %s", cfg.HTTP.BodyLimit)
	}
	if !cfg.Auth.Ephemeral || len(cfg.Auth.SecretKey) != 32 {
		t.Fatal("expected an ephemeral 32 byte secret in development")
	}
}

func TestFromEnv_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.Ephemeral || string(cfg.Auth.SecretKey) != "a-real-secret" {
		t.Fatal("expected configured secret")
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production posture")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_WINDOW", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("ALLOWED_ORIGINS", "https://portal.example, ,https://admin.example")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.HTTP.RateLimit != 10 || cfg.HTTP.RateWindow != time.Minute {
		t.Fatalf("unexpected rate limit %d/%s", cfg.HTTP.RateLimit, cfg.HTTP.RateWindow)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", cfg.HTTP.AllowedOrigins)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")

	for key, value := range map[string]string{
		"JWT_TTL":               "forever",
		"RATE_LIMIT_WINDOW":     "-1m",
		"RATE_LIMIT_PER_WINDOW": "zero",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
