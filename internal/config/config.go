// Package config loads runtime settings. Sources apply in order: built-in
// defaults, an optional YAML file, then OTTOCOST_* environment variables.
// Command-line flags are applied on top by main.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Import  ImportConfig  `yaml:"import"`
	Export  ExportConfig  `yaml:"export"`
	Metrics MetricsConfig `yaml:"metrics"`
	Sample  bool          `yaml:"sample"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"` // off, normal, verbose
	File  string `yaml:"file"`  // path, or "stderr"
}

// ImportConfig lists CSV files to load at startup. Empty paths are skipped.
type ImportConfig struct {
	Recipes   string `yaml:"recipes"`
	Prices    string `yaml:"prices"`
	Orders    string `yaml:"orders"`
	Sales     string `yaml:"sales"`
	Inventory string `yaml:"inventory"`
}

// ExportConfig selects where exported files go.
type ExportConfig struct {
	Target          string `yaml:"target"` // directory or s3://bucket/prefix
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

// MetricsConfig controls the optional /metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "normal",
			File:  ".ottocost-logs/ottocost.log",
		},
		Export: ExportConfig{
			Target: "exports",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
			Path: "/metrics",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (a
// missing file is fine, an empty path skips it) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.Log.Level = getEnv("OTTOCOST_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("OTTOCOST_LOG_FILE", c.Log.File)

	c.Import.Recipes = getEnv("OTTOCOST_IMPORT_RECIPES", c.Import.Recipes)
	c.Import.Prices = getEnv("OTTOCOST_IMPORT_PRICES", c.Import.Prices)
	c.Import.Orders = getEnv("OTTOCOST_IMPORT_ORDERS", c.Import.Orders)
	c.Import.Sales = getEnv("OTTOCOST_IMPORT_SALES", c.Import.Sales)
	c.Import.Inventory = getEnv("OTTOCOST_IMPORT_INVENTORY", c.Import.Inventory)

	c.Export.Target = getEnv("OTTOCOST_EXPORT_TARGET", c.Export.Target)
	c.Export.Region = getEnv("OTTOCOST_S3_REGION", c.Export.Region)
	c.Export.Endpoint = getEnv("OTTOCOST_S3_ENDPOINT", c.Export.Endpoint)
	c.Export.AccessKeyID = getEnv("OTTOCOST_S3_ACCESS_KEY_ID", c.Export.AccessKeyID)
	c.Export.SecretAccessKey = getEnv("OTTOCOST_S3_SECRET_ACCESS_KEY", c.Export.SecretAccessKey)
	c.Export.PathStyle = getEnvBool("OTTOCOST_S3_PATH_STYLE", c.Export.PathStyle)

	c.Metrics.Enabled = getEnvBool("OTTOCOST_METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.Addr = getEnv("OTTOCOST_METRICS_ADDR", c.Metrics.Addr)
	c.Metrics.Path = getEnv("OTTOCOST_METRICS_PATH", c.Metrics.Path)

	c.Sample = getEnvBool("OTTOCOST_SAMPLE", c.Sample)
}

// ConfigPath returns the config file named by OTTOCOST_CONFIG, or fallback.
func ConfigPath(fallback string) string {
	return getEnv("OTTOCOST_CONFIG", fallback)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}
