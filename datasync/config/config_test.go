package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("DSTEST_DEFAULTS", "")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, "3.0.0", cfg.APIVersion)
	assert.Equal(t, 100*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DSTEST_ENDPOINT", "https://example.test")
	t.Setenv("DSTEST_TIMEOUT", "5s")
	t.Setenv("DSTEST_LOG_LEVEL", "debug")

	cfg, err := Load("DSTEST_", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasync.yaml")
	content := "endpoint: https://file.test\napi_version: 3.1.0\nlog:\n  format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load("DSTEST_FILE", path)
		require.NoError(t, err)
		assert.Equal(t, "https://file.test", cfg.Endpoint)
		assert.Equal(t, "3.1.0", cfg.APIVersion)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("DSTEST_FILE_ENDPOINT", "https://env.test")
		cfg, err := Load("DSTEST_FILE", path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.test", cfg.Endpoint)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("DSTEST_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Endpoint: "https://x", Timeout: -time.Second}.Validate())
	assert.NoError(t, Config{Endpoint: "https://x"}.Validate())
}
