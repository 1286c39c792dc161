package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"artesapos/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig         `yaml:"app"`
	Backend    BackendConfig     `yaml:"backend"`
	Locale     LocaleConfig      `yaml:"locale"`
	Cache      CacheConfig       `yaml:"cache"`
	Logging    LoggingConfig     `yaml:"logging"`
	Monitoring MonitoringConfig  `yaml:"monitoring"`
	Exports    ExportConfig      `yaml:"exports"`
	SeedMenu   []models.MenuItem `yaml:"seed_menu"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type BackendConfig struct {
	BaseURL        string          `yaml:"base_url"`
	TimeoutSeconds int             `yaml:"timeout_seconds"`
	Retry          RetryConfig     `yaml:"retry"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`
	DelayMS    int `yaml:"delay_ms"`
	MaxDelayMS int `yaml:"max_delay_ms"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LocaleConfig struct {
	Timezone string `yaml:"timezone"`
}

type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	PoolSize   int    `yaml:"pool_size"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled    bool `yaml:"prometheus_enabled"`
	PrometheusPort       int  `yaml:"prometheus_port"`
	ProbeIntervalSeconds int  `yaml:"probe_interval_seconds"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; values referenced from the YAML via ${VAR}.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base url is required")
	}
	parsed, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("backend base url %q is not a valid http(s) url", c.Backend.BaseURL)
	}

	if _, err := c.Locale.Location(); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Locale.Timezone, err)
	}

	if c.Cache.Enabled && c.Cache.Address == "" {
		return errors.New("cache address is required when cache is enabled")
	}

	return ValidateSeedMenu(c.SeedMenu)
}

// ValidateSeedMenu rejects seed items without a name and duplicate ids.
func ValidateSeedMenu(items []models.MenuItem) error {
	itemIDs := make(map[string]bool)
	for _, item := range items {
		if item.Name == "" {
			return fmt.Errorf("seed menu item %q has no name", item.ID)
		}
		if item.ID != "" && itemIDs[item.ID] {
			return fmt.Errorf("duplicate seed menu item id: %s", item.ID)
		}
		itemIDs[item.ID] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Backend.Retry.MaxRetries == 0 {
		c.Backend.Retry.MaxRetries = 2
	}
	if c.Backend.Retry.DelayMS == 0 {
		c.Backend.Retry.DelayMS = 500
	}
	if c.Backend.RateLimit.RPS > 0 && c.Backend.RateLimit.Burst == 0 {
		c.Backend.RateLimit.Burst = 5
	}

	if c.Locale.Timezone == "" {
		c.Locale.Timezone = "America/Bogota"
	}

	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 60
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Monitoring.ProbeIntervalSeconds == 0 {
		c.Monitoring.ProbeIntervalSeconds = 30
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

// Timeout is the per-request HTTP timeout. It is enforced by the client.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func (l LocaleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(l.Timezone)
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (m MonitoringConfig) ProbeInterval() time.Duration {
	return time.Duration(m.ProbeIntervalSeconds) * time.Second
}
