package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"PORT", "DATABASE_PATH", "TOKEN_TTL", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "APP_ENV", "MAINTENANCE_SCHEDULE", "SHUTDOWN_TIMEOUT"} {
		unset(t, k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./shopsmart.db", cfg.DatabasePath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Production)
	assert.Equal(t, "0 3 * * *", cfg.MaintenanceSchedule)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "5000")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://shop.example.com ,")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAINTENANCE_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Production)
	assert.Empty(t, cfg.MaintenanceSchedule)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("PORT", "eighty")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("PORT", "8080")
		t.Setenv("TOKEN_TTL", "-1h")
		_, err := Load()
		assert.Error(t, err)
	})
}

// unset removes key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
