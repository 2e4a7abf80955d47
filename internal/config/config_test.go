package config

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ACCESS_TOKEN_LIFETIME", "")
	t.Setenv("REFRESH_TOKEN_LIFETIME", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "cardexpro.db" {
		t.Errorf("expected default database path, got %s", cfg.DatabasePath)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.AccessTokenLifetime != 7*24*time.Hour {
		t.Errorf("expected access lifetime of 7 days, got %s", cfg.AccessTokenLifetime)
	}
	if cfg.RefreshTokenLifetime != 24*time.Hour {
		t.Errorf("expected refresh lifetime of 1 day, got %s", cfg.RefreshTokenLifetime)
	}
	// Deliberately inverted relative to the usual JWT setup.
	if cfg.AccessTokenLifetime <= cfg.RefreshTokenLifetime {
		t.Error("expected the access token to outlive the refresh token")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing JWT_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a short JWT_SECRET")
	}
}

func TestLoad_BcryptCost(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("BCRYPT_COST", "10")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}

	for _, bad := range []string{"3", "15", "banana"} {
		t.Setenv("BCRYPT_COST", bad)
		if _, err := Load(); err == nil {
			t.Errorf("expected an error for BCRYPT_COST=%s", bad)
		}
	}
}

func TestLoad_Lifetimes(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("ACCESS_TOKEN_LIFETIME", "15m")
	t.Setenv("REFRESH_TOKEN_LIFETIME", "720h")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessTokenLifetime != 15*time.Minute {
		t.Errorf("expected 15m access lifetime, got %s", cfg.AccessTokenLifetime)
	}
	if cfg.RefreshTokenLifetime != 720*time.Hour {
		t.Errorf("expected 720h refresh lifetime, got %s", cfg.RefreshTokenLifetime)
	}

	t.Setenv("ACCESS_TOKEN_LIFETIME", "-1h")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a negative lifetime")
	}

	t.Setenv("ACCESS_TOKEN_LIFETIME", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected an error for an unparsable lifetime")
	}
}

func TestParseOrigins(t *testing.T) {
	got := parseOrigins(" http://a.example , http://b.example ,")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}
}
