// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends accepted in Config.Storage.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // Listen address for the HTTP API

	// Analysis service
	AnalyzerURL   string  `json:"analyzer_url,omitempty" yaml:"analyzer_url,omitempty"`     // Base URL of the ATS analysis service
	AnalyzerRPS   float64 `json:"analyzer_rps,omitempty" yaml:"analyzer_rps,omitempty"`     // Outbound requests per second (0 disables throttling)
	AnalyzerBurst int     `json:"analyzer_burst,omitempty" yaml:"analyzer_burst,omitempty"` // Outbound burst size

	// Persistence
	Storage     string `json:"storage,omitempty" yaml:"storage,omitempty"`           // memory, file, sqlite or postgres
	StoragePath string `json:"storage_path,omitempty" yaml:"storage_path,omitempty"` // File or SQLite path
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL (drafts, postgres storage)

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:          ":8080",
		AnalyzerURL:   "http://localhost:4000",
		AnalyzerRPS:   2,
		AnalyzerBurst: 4,
		Storage:       StorageFile,
		StoragePath:   filepath.Join(".resume_builder", "storage.json"),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvAddr        = "RESUME_BUILDER_ADDR"
	EnvAnalyzerURL = "ATS_SERVICE_URL"
	EnvAnalyzerRPS = "ATS_SERVICE_RPS"
	EnvStorage     = "RESUME_BUILDER_STORAGE"
	EnvStoragePath = "RESUME_BUILDER_STORAGE_PATH"
	EnvDatabaseURL = "DATABASE_URL"
	EnvVerbose     = "RESUME_BUILDER_VERBOSE"
)

// ApplyEnv overrides fields from environment variables that are set.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	overrides := map[string]*string{
		EnvAddr:        &c.Addr,
		EnvAnalyzerURL: &c.AnalyzerURL,
		EnvStorage:     &c.Storage,
		EnvStoragePath: &c.StoragePath,
		EnvDatabaseURL: &c.DatabaseURL,
	}
	for name, field := range overrides {
		if v := getenv(name); v != "" {
			*field = v
		}
	}

	if v := getenv(EnvAnalyzerRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number: %w", EnvAnalyzerRPS, err)
		}
		c.AnalyzerRPS = rps
	}
	if v := getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a boolean: %w", EnvVerbose, err)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageMemory:
	case StorageFile, StorageSQLite:
		if c.StoragePath == "" {
			return fmt.Errorf("config error: 'storage_path' is required for %s storage", c.Storage)
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q", c.Storage)
	}

	// Validate numeric ranges
	if c.AnalyzerRPS < 0 {
		return fmt.Errorf("config error: 'analyzer_rps' must be non-negative")
	}
	if c.AnalyzerBurst < 0 {
		return fmt.Errorf("config error: 'analyzer_burst' must be non-negative")
	}

	if c.AnalyzerURL != "" && !strings.HasPrefix(c.AnalyzerURL, "http://") && !strings.HasPrefix(c.AnalyzerURL, "https://") {
		return fmt.Errorf("config error: 'analyzer_url' must be an http(s) URL")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.AnalyzerURL == "" {
		result.AnalyzerURL = defaults.AnalyzerURL
	}
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.StoragePath == "" {
		result.StoragePath = defaults.StoragePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.AnalyzerRPS == 0 {
		result.AnalyzerRPS = defaults.AnalyzerRPS
	}
	if result.AnalyzerBurst == 0 {
		result.AnalyzerBurst = defaults.AnalyzerBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
