package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	libconfig "energytrack/backend/libs/config"
)

const (
	defaultPort           = "8085"
	defaultDeviceCacheTTL = 5 * time.Minute
	defaultDevicesTimeout = 3 * time.Second
)

// Config defines cost service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"COST_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN         string `yaml:"dsn" env:"COST_POSTGRES_DSN"`
		AutoMigrate bool   `yaml:"autoMigrate" env:"COST_DB_AUTO_MIGRATE"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"COST_REDIS_ADDR"`
		Password string `yaml:"password" env:"COST_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"COST_REDIS_DB"`
	} `yaml:"redis"`
	Cache struct {
		Enabled    bool          `yaml:"enabled" env:"COST_CACHE_ENABLED"`
		DeviceTTL  time.Duration `yaml:"deviceTtl" env:"COST_CACHE_DEVICE_TTL"`
		L1MaxItems int64         `yaml:"l1MaxItems" env:"COST_CACHE_L1_MAX_ITEMS"`
	} `yaml:"cache"`
	NATS struct {
		URL           string `yaml:"url" env:"COST_NATS_URL"`
		SubjectPrefix string `yaml:"subjectPrefix" env:"COST_NATS_SUBJECT_PREFIX"`
	} `yaml:"nats"`
	Devices struct {
		URL     string        `yaml:"url" env:"COST_DEVICES_URL"`
		Timeout time.Duration `yaml:"timeout" env:"COST_DEVICES_TIMEOUT"`
	} `yaml:"devices"`
	Auth struct {
		JWTSecret string `yaml:"jwtSecret" env:"COST_JWT_SECRET"`
	} `yaml:"auth"`
	Tariff struct {
		File string `yaml:"file" env:"COST_TARIFF_FILE"`
	} `yaml:"tariff"`
	Report struct {
		Timezone string `yaml:"timezone" env:"COST_REPORT_TIMEZONE"`
	} `yaml:"report"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Cache.Enabled = true
	cfg.Cache.DeviceTTL = defaultDeviceCacheTTL

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// DeviceCacheTTL returns how long resolved wattages stay cached.
func (c *Config) DeviceCacheTTL() time.Duration {
	if c.Cache.DeviceTTL <= 0 {
		return defaultDeviceCacheTTL
	}
	return c.Cache.DeviceTTL
}

// DevicesTimeout bounds a single device registry request.
func (c *Config) DevicesTimeout() time.Duration {
	if c.Devices.Timeout <= 0 {
		return defaultDevicesTimeout
	}
	return c.Devices.Timeout
}

// Location is the zone report buckets are computed in. Empty means server local time.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Report.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: report timezone: %w", err)
	}
	return loc, nil
}
