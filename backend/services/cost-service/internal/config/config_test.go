package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("COST_POSTGRES_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("COST_POSTGRES_DSN", "postgres://localhost/energy")
	t.Setenv("COST_DEVICES_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8085", cfg.HTTPAddress())
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.DeviceCacheTTL())
	assert.Equal(t, 750*time.Millisecond, cfg.DevicesTimeout())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: ":9090"
database:
  dsn: postgres://db/energy
cache:
  enabled: false
  deviceTtl: 30s
report:
  timezone: Asia/Colombo
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("COST_POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.DeviceCacheTTL())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Colombo", loc.String())
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("COST_POSTGRES_DSN", "postgres://localhost/energy")
	t.Setenv("COST_REPORT_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
}
