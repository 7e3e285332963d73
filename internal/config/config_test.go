package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "identity", cfg.MongoDatabase)
	require.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	require.Equal(t, uint32(10), cfg.PasswordHashCost)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("HTTP_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 15*time.Minute, cfg.JWTExpiresIn)
	require.Equal(t, ":9999", cfg.HTTPAddr)
}

func TestLoad_NonPositiveExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "-1h")

	_, err := Load()
	require.Error(t, err)
}
