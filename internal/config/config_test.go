package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the duration of the test, restoring any
// previous value afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, os.Getenv(key))
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"PORT", "DATABASE_PATH", "TOKEN_TTL", "APP_ENV"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./accounts.db", cfg.DatabasePath)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []byte("test-secret"), cfg.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	unsetenv(t, "JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Values(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/users.db")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/users.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
