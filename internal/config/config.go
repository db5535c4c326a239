package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string

	// Exactly one of these is needed; the hash wins when both are set.
	AdminPassword     string
	AdminPasswordHash string

	SessionSecret string
	SessionIssuer string
	SessionTTL    time.Duration
	SessionLimit  int

	CORSOrigins      []string
	LogLevel         string
	MetricsNamespace string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:              fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		SessionSecret:     strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionIssuer:     fallback(os.Getenv("SESSION_ISSUER"), "va-ops-backend"),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:          fallback(os.Getenv("LOG_LEVEL"), "info"),
		MetricsNamespace:  fallback(os.Getenv("METRICS_NAMESPACE"), "va_ops"),
	}

	minutes := fallback(os.Getenv("SESSION_TTL_MINUTES"), "720")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.SessionTTL = 720 * time.Minute
	}

	cfg.SessionLimit = 10000
	if limit, err := strconv.Atoi(fallback(os.Getenv("SESSION_LIMIT"), "10000")); err == nil && limit > 0 {
		cfg.SessionLimit = limit
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
