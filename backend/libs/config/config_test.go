package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Items   int64         `yaml:"items"`
	} `yaml:"cache"`
	Ratio   float64 `yaml:"ratio"`
	Ignored string  `yaml:"ignored" env:"-"`
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9000"
cache:
  enabled: true
  ttl: 2m
  items: 10
ratio: 0.5
ignored: from-file
`), 0o600))

	t.Setenv("SAMPLE_HTTP_PORT", "9100")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("IGNORED", "from-env")

	var cfg sampleConfig
	require.NoError(t, LoadConfigFile(path, &cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, int64(10), cfg.Cache.Items)
	assert.InDelta(t, 0.5, cfg.Ratio, 1e-9)
	assert.Equal(t, "from-file", cfg.Ignored)
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	var cfg sampleConfig
	require.Error(t, LoadConfigFile("", cfg))
	require.Error(t, LoadConfigFile("", nil))
}

func TestLoadConfigBadEnvValue(t *testing.T) {
	t.Setenv("CACHE_ITEMS", "many")

	var cfg sampleConfig
	err := LoadConfigFile("", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_ITEMS")
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg sampleConfig
	err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

func TestLoadConfigIgnoresEmptyEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\n"), 0o600))
	t.Setenv("SAMPLE_HTTP_PORT", " ")
	t.Setenv("CACHE_TTL", "")

	var cfg sampleConfig
	require.NoError(t, LoadConfigFile(path, &cfg))
	assert.Equal(t, "9000", cfg.HTTP.Port)
}
