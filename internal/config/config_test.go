package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/leads-api/internal/config"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestLoad_DefaultsFillEmptyFile(t *testing.T) {
	path := writeConfig(t, "service:\n  name: leads-api\n")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "leads-api", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "clients", cfg.Tables.Clients)
	assert.Equal(t, "vendedores-dev", cfg.Tables.Vendedores)
	assert.Equal(t, "eventsv2", cfg.Tables.Events)
	assert.Equal(t, "chat_mensaje", cfg.Tables.Messages)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FileValuesWin(t *testing.T) {
	path := writeConfig(t, `
service:
  name: leads-api
  port: 9090
aws:
  region: us-west-2
  endpoint: http://localhost:8000
tables:
  events: events-staging
logging:
  level: debug
  format: console
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:8000", cfg.AWS.Endpoint)
	assert.Equal(t, "events-staging", cfg.Tables.Events)
	assert.Equal(t, "clients", cfg.Tables.Clients, "unset tables still default")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("EVENT_TABLE_NAME", "eventsv2-prod")
	t.Setenv("PORT", "3000")

	path := writeConfig(t, `
service:
  name: leads-api
aws:
  region: us-west-2
tables:
  events: events-staging
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "eventsv2-prod", cfg.Tables.Events)
	assert.Equal(t, 3000, cfg.Service.Port)
}

func TestLoad_InvalidLogLevelRejected(t *testing.T) {
	path := writeConfig(t, `
service:
  name: leads-api
logging:
  level: verbose
`)

	_, err := config.Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestLoad_PortOutOfRangeRejected(t *testing.T) {
	path := writeConfig(t, `
service:
  name: leads-api
  port: 70000
`)

	_, err := config.Load(path)

	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read")
}
