// Package config loads the scanner configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete scanner configuration.
type Config struct {
	RefCatalogPath string         `yaml:"ref_catalog_path"`
	Cache          CacheConfig    `yaml:"cache"`
	Pipeline       PipelineConfig `yaml:"pipeline"`
	Sources        SourcesConfig  `yaml:"sources"`
	Telegram       TelegramConfig `yaml:"telegram"`
	MetricsAddr    string         `yaml:"metrics_addr"`
}

// CacheConfig bounds the resolution cache.
type CacheConfig struct {
	TTLSecs    int    `yaml:"ttl_secs"`
	MaxEntries int    `yaml:"max_entries"`
	RedisAddr  string `yaml:"redis_addr"` // empty: in-memory cache
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSecs) * time.Second
}

// PipelineConfig bounds the scan pipeline.
type PipelineConfig struct {
	BatchSize     int `yaml:"batch_size"`
	DealThreshold int `yaml:"deal_threshold"`
}

// SourcesConfig configures the price source chain.
type SourcesConfig struct {
	PostgresDSN        string `yaml:"postgres_dsn"` // empty: in-memory local catalog
	ThrottleMS         int    `yaml:"throttle_ms"`  // min spacing between external calls
	ExternalAPIEnabled bool   `yaml:"external_api_enabled"`
	ExternalAPIURL     string `yaml:"external_api_url"`
}

// Throttle returns the minimum inter-call spacing for external sources.
func (s SourcesConfig) Throttle() time.Duration {
	return time.Duration(s.ThrottleMS) * time.Millisecond
}

// TelegramConfig configures deal notifications; a missing token disables
// them.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Cache.TTLSecs == 0 {
		c.Cache.TTLSecs = 900
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 10000
	}
	if c.Pipeline.BatchSize == 0 {
		c.Pipeline.BatchSize = 10
	}
	if c.Pipeline.DealThreshold == 0 {
		c.Pipeline.DealThreshold = 30
	}
	if c.Sources.ThrottleMS == 0 {
		c.Sources.ThrottleMS = 500
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.RefCatalogPath == "" {
		return fmt.Errorf("ref_catalog_path is required")
	}
	if c.Cache.TTLSecs < 0 {
		return fmt.Errorf("cache ttl_secs must be non-negative, got %d", c.Cache.TTLSecs)
	}
	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("pipeline batch_size must be positive, got %d", c.Pipeline.BatchSize)
	}
	if c.Pipeline.DealThreshold < 0 || c.Pipeline.DealThreshold > 100 {
		return fmt.Errorf("pipeline deal_threshold must be in [0,100], got %d", c.Pipeline.DealThreshold)
	}
	if c.Sources.ThrottleMS < 0 {
		return fmt.Errorf("sources throttle_ms must be non-negative, got %d", c.Sources.ThrottleMS)
	}
	if c.Sources.ExternalAPIEnabled && c.Sources.ExternalAPIURL == "" {
		return fmt.Errorf("sources external_api_url is required when external_api_enabled is set")
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when token is set")
	}
	return nil
}
