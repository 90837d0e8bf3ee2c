package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `is_debug: true
listen:
  bind_ip: "127.0.0.1"
  port: "9090"
storage:
  driver: "sqlite"
  path: "test.sqlite3"
authorization:
  secret_key: "file-secret"
  token_ttl_minutes: 15
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsDebug)
	assert.Equal(t, "127.0.0.1", cfg.Listen.BindIp)
	assert.Equal(t, "9090", cfg.Listen.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "test.sqlite3", cfg.Storage.Path)
	assert.Equal(t, "file-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "8080", cfg.Listen.Port)
}
