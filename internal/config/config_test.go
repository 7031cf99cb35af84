package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.BaseURL)
	assert.Equal(t, "/api/auth/logout", cfg.Backend.LogoutPath)
	assert.Equal(t, 1500*time.Millisecond, cfg.RedirectDelay())
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: "9090"
  mode: production
backend:
  base_url: https://api.smarted.example
  timeout: 5s
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("BACKEND_TIMEOUT", "12s")
	t.Setenv("SESSION_REDIRECT_DELAY", "2s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.smarted.example", cfg.Backend.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.BackendTimeout())
	assert.Equal(t, 2*time.Second, cfg.RedirectDelay())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("BACKEND_URL", "not a url")
	_, err := LoadConfig("")
	assert.Error(t, err)

	t.Setenv("BACKEND_URL", "http://localhost:3000")
	t.Setenv("SESSION_REDIRECT_DELAY", "soon")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestPrefixedEnvWins(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://bare.example")
	t.Setenv("SMARTED_BACKEND_URL", " http://prefixed.example ")
	t.Setenv("SMARTED_CREDENTIALS", "/tmp/creds.yaml")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://prefixed.example", cfg.Backend.BaseURL)
	assert.Equal(t, "/tmp/creds.yaml", cfg.Session.CredentialsPath)
}
