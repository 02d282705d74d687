package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_AllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {
			"keyset_path": "/data/keyset.json",
			"keyring_service": "safepass-json"
		},
		"storage": {
			"db": {"dsn": "/data/vault.db"}
		},
		"generator": {"default_length": 32},
		"workers": {"pool_size": 2}
	}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/keyset.json", cfg.App.KeysetPath)
	assert.Equal(t, "safepass-json", cfg.App.KeyringService)
	assert.Equal(t, "/data/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 32, cfg.Generator.DefaultLength)
	assert.Equal(t, 2, cfg.Workers.PoolSize)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_UnknownFieldsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": {"db": {"dsn": "/data/vault.db"}},
		"telemetry": {"endpoint": "ignored"}
	}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/vault.db", cfg.Storage.DB.DSN)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}
