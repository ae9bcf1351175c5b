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
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "127.0.0.1"

voyado:
  base_url: "https://tenant.voyado.com/api/v2"
  api_key: "test-api-key"
  timeout_seconds: 45
  csat_schema_id: "csatScore"

dixa:
  base_url: "https://dev.dixa.io/v1"
  api_token: "dixa-token"
  email_integration_id: "integration-1"

eventlog:
  backend: "redis"
  redis_addr: "localhost:6379"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	assert.Equal(t, "https://tenant.voyado.com/api/v2", cfg.Voyado.BaseURL)
	assert.Equal(t, "test-api-key", cfg.Voyado.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Voyado.Timeout())
	assert.Equal(t, "csatScore", cfg.Voyado.CSATSchemaID)

	assert.Equal(t, "dixa-token", cfg.Dixa.APIToken)
	assert.Equal(t, "integration-1", cfg.Dixa.EmailIntegrationID)
	assert.Equal(t, 30*time.Second, cfg.Dixa.Timeout())

	assert.Equal(t, "redis", cfg.EventLog.Backend)
	assert.Equal(t, "localhost:6379", cfg.EventLog.RedisAddr)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 8080\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Voyado.Timeout())
	assert.Equal(t, "csatFeedback", cfg.Voyado.CSATSchemaID)
	assert.Equal(t, "completedProductRating", cfg.Voyado.ReviewSchemaID)
	assert.Equal(t, "https://dev.dixa.io/v1", cfg.Dixa.BaseURL)
	assert.Equal(t, "memory", cfg.EventLog.Backend)
	assert.Equal(t, "bridge:latest-csat-event", cfg.EventLog.RedisKey)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.RedactEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	// Runs entirely on defaults
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.EventLog.Backend)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("VOYADO_API_BASE_URL", "https://env.voyado.com/api/v2")
	t.Setenv("VOYADO_API_KEY", "env-key")
	t.Setenv("DIXA_API_TOKEN", "env-token")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "https://env.voyado.com/api/v2", cfg.Voyado.BaseURL)
	assert.Equal(t, "env-key", cfg.Voyado.APIKey)
	assert.Equal(t, "env-token", cfg.Dixa.APIToken)
	assert.Equal(t, "redis", cfg.EventLog.Backend)
	assert.Equal(t, "redis:6379", cfg.EventLog.RedisAddr)
}
