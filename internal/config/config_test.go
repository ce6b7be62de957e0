package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "sqlite://shop.db")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpires)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("CONTACT_RATE_LIMIT", "not-a-number")
	t.Setenv("TELEGRAM_API_URL", "http://localhost:9999/")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.TokenExpires)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, "http://localhost:9999", cfg.TelegramAPIURL)
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.EqualError(t, err, "JWT_SECRET must be set")
}
