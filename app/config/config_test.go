package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "bibles.db", conf.DatabasePath)
	assert.Equal(t, 100, conf.BatchSize)
	assert.Equal(t, "localhost", conf.Server.Address)
	assert.Equal(t, 8080, conf.Server.Port)
	assert.Empty(t, conf.EnabledTranslations)
}

func TestLoad_Overrides(t *testing.T) {
	conf, err := Load(writeConfig(t, `{
		"instance_name": "berean-prod",
		"database_path": "/var/lib/berean/bibles.db",
		"enabled_translations": ["KJV", "ASV"],
		"batch_size": 25,
		"timeout_seconds": 15,
		"server": {"address": "0.0.0.0", "port": 9090, "rate_limit": 20}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "berean-prod", conf.InstanceName)
	assert.Equal(t, "/var/lib/berean/bibles.db", conf.DatabasePath)
	assert.Equal(t, []string{"KJV", "ASV"}, conf.EnabledTranslations)
	assert.Equal(t, 25, conf.BatchSize)
	assert.Equal(t, 15, conf.TimeoutSeconds)
	assert.Equal(t, "0.0.0.0", conf.Server.Address)
	assert.Equal(t, 9090, conf.Server.Port)
	assert.Equal(t, 20, conf.Server.RateLimit)
}

func TestLoad_InvalidBatchSizeFallsBack(t *testing.T) {
	conf, err := Load(writeConfig(t, `{"batch_size": -1}`))
	require.NoError(t, err)
	assert.Equal(t, 100, conf.BatchSize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := Load(writeConfig(t, `{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode config file")
}
