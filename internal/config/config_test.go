package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvListen, EnvDiskPath, EnvLogLevel, EnvLogFormat, EnvStreamInterval} {
		t.Setenv(k, "")
	}
	// keep godotenv away from any .env next to the package
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.DiskPath)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sysdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"disk_path: /data\nlog_format: json\nstream_interval: 2s\n"), 0o644))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DiskPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.StreamInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:5001", cfg.Listen)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte(EnvDiskPath+"=/mnt\n"), 0o644))
	// godotenv never overrides variables that are already set, even empty ones
	os.Unsetenv(EnvDiskPath)
	t.Cleanup(func() { os.Unsetenv(EnvDiskPath) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/mnt", cfg.DiskPath)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadBadInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvStreamInterval, "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, EnvStreamInterval)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Listen = "nope"
	cfg.LogLevel = "loud"
	cfg.StreamInterval = time.Millisecond
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "Listen must be host:port")
	assert.ErrorContains(t, err, "LogLevel must be one of")
	assert.ErrorContains(t, err, "StreamInterval must be at least")
}
