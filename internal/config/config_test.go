package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winmate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "file", cfg.Journal.Backend)
	assert.Equal(t, 90.0, cfg.Monitor.CPUWarnPercent)
	assert.Equal(t, 95.0, cfg.Monitor.DiskWarnPercent)
	assert.Equal(t, time.Minute, cfg.Monitor.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Monitor.Cooldown)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
extensions_dir: /opt/winmate/extensions
journal:
  backend: redis
  redis_addr: localhost:6379
  redis_db: 2
monitor:
  cpu_warn_percent: 80
  interval: 30s
server:
  addr: 0.0.0.0:9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/winmate/extensions", cfg.ExtensionsDir)
	assert.Equal(t, "redis", cfg.Journal.Backend)
	assert.Equal(t, "localhost:6379", cfg.Journal.RedisAddr)
	assert.Equal(t, 2, cfg.Journal.RedisDB)
	assert.Equal(t, 80.0, cfg.Monitor.CPUWarnPercent)
	assert.Equal(t, 30*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)

	// Untouched fields keep defaults.
	assert.Equal(t, 90.0, cfg.Monitor.RAMWarnPercent)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")

	t.Setenv("WINMATE_LOG_LEVEL", "warn")
	t.Setenv("WINMATE_JOURNAL_BACKEND", "memory")
	t.Setenv("WINMATE_MONITOR_INTERVAL", "2m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.Journal.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Monitor.Interval)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "log_level: [unclosed\n")
	_, err := Load(path)
	assert.Error(t, err)
}
