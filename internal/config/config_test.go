package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_FROM", "noreply@example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "auth-system", cfg.MongoDBName)
	assert.Equal(t, "auth-api", cfg.Token.Issuer)
	assert.Equal(t, time.Hour, cfg.Token.TokenExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.Token.PasswordResetExpires)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("TOKEN_EXPIRES_IN", "30m")
	t.Setenv("TOKEN_PASSWORD_RESET_EXPIRES_IN", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 30*time.Minute, cfg.Token.TokenExpiresIn)
	assert.Equal(t, 5*time.Minute, cfg.Token.PasswordResetExpires)
}

func TestLoad_MissingMongoURI(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoad_MissingTokenSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
}

func TestLoad_MissingSMTPHost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
}
