package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/hotel")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PESAPAL_CONSUMER_KEY", "key")
	t.Setenv("PESAPAL_CONSUMER_SECRET", "secret")
	t.Setenv("PESAPAL_CALLBACK_URL", "https://example.com/v1/payments/callback")
	t.Setenv("PESAPAL_NOTIFICATION_ID", "ipn-id")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://pay.pesapal.com/v3", cfg.Pesapal.BaseURL)
	assert.Equal(t, "UGX", cfg.Pesapal.Currency)
	assert.Equal(t, 15*time.Second, cfg.Pesapal.Timeout)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoadMissingGatewayCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PESAPAL_CONSUMER_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PESAPAL_CONSUMER_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	t.Setenv("PESAPAL_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.Pesapal.Timeout)
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
