package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	JWTSecret           string
	TokenTTL            time.Duration
	AllowedOrigins      []string
	LogLevel            string
	Production          bool
	MaintenanceSchedule string // cron expression, empty disables maintenance
	ShutdownTimeout     time.Duration
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: must be positive")
	}

	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./shopsmart.db"),
		JWTSecret:           secret,
		TokenTTL:            ttl,
		AllowedOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Production:          os.Getenv("APP_ENV") == "production",
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "0 3 * * *"),
		ShutdownTimeout:     shutdown,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
