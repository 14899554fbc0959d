package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.UTC, cfg.App.Location())
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"dev-secret"}, cfg.TokenSecrets())
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_TIMEZONE", "Africa/Accra")
	t.Setenv("APP_SECRET_KEY_BASE", "base")
	t.Setenv("AUTH_JWT_SECRET", "current")
	t.Setenv("AUTH_JWT_PREVIOUS_SECRETS", "old-1, ,old-2")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "45m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.App.Addr())
	assert.Equal(t, "Africa/Accra", cfg.App.Location().String())
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.Equal(t, 45*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"current", "old-1", "old-2", "base"}, cfg.TokenSecrets())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSAllowedOrigins)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_TIMEZONE")
}
