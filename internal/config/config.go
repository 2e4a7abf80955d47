package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment
// (with optional .env file support).
type Config struct {
	Port           string
	DatabasePath   string
	JWTSecret      string
	BcryptCost     int
	AllowedOrigins []string // CORS origins, comma-separated in ALLOWED_ORIGINS

	// Token lifetimes mirror the original deployment configuration,
	// where the access token outlives the refresh token. That inversion
	// is preserved verbatim; change both values together if fixing it.
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	// Optional superuser bootstrapped at startup when both are set.
	AdminEmail    string
	AdminPassword string
}

const (
	defaultAccessLifetime  = 7 * 24 * time.Hour
	defaultRefreshLifetime = 24 * time.Hour
)

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present. It fails fast on
// missing or out-of-range values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabasePath:         getEnv("DATABASE_PATH", "cardexpro.db"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		BcryptCost:           12,
		AllowedOrigins:       parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		AccessTokenLifetime:  defaultAccessLifetime,
		RefreshTokenLifetime: defaultRefreshLifetime,
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	var err error
	if cfg.AccessTokenLifetime, err = lifetimeEnv("ACCESS_TOKEN_LIFETIME", defaultAccessLifetime); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenLifetime, err = lifetimeEnv("REFRESH_TOKEN_LIFETIME", defaultRefreshLifetime); err != nil {
		return nil, err
	}

	return cfg, nil
}

func lifetimeEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
