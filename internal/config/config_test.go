package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devffery/task-two/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/identity")
	t.Setenv("TOKEN_SECRET", testSecret)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "identity-api", cfg.ServiceName)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 600, cfg.RateLimitRPM)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/identity")
	t.Setenv("TOKEN_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.HTTPPort)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 120, cfg.RateLimitRPM)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_SECRET", testSecret)

	_, err := config.Load()
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRejectsShortTokenSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/identity")
	t.Setenv("TOKEN_SECRET", "too-short")

	_, err := config.Load()
	require.ErrorContains(t, err, "TOKEN_SECRET")
}
