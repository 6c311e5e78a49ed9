package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "taskapi.yaml"

// Config holds server settings
type Config struct {
	Addr         string `yaml:"addr" json:"addr" env:"TASKAPI_ADDR"`                            // Listen address
	Port         string `yaml:"-" json:"-" env:"PORT"`                                          // Overrides the port of Addr when set
	DBDriver     string `yaml:"db_driver" json:"db_driver" env:"TASKAPI_DB_DRIVER"`             // sqlite or postgres
	DatabaseURL  string `yaml:"database_url" json:"database_url" env:"DATABASE_URL"`            // DSN or sqlite file path
	Seed         bool   `yaml:"seed" json:"seed" env:"TASKAPI_SEED"`                            // Insert demo data into an empty store
	ExposeErrors bool   `yaml:"expose_errors" json:"expose_errors" env:"TASKAPI_EXPOSE_ERRORS"` // Include error text in 500 responses

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level" env:"TASKAPI_LOG_LEVEL"`       // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file" env:"TASKAPI_LOG_FILE"`          // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console" env:"TASKAPI_LOG_CONSOLE"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8080",
		DBDriver:    "sqlite",
		DatabaseURL: filepath.Join("data", "taskapi.db"),
		Seed:        true,
		LogLevel:    "INFO",
		LogConsole:  true,
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Port != "" {
		cfg.Addr = ":" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("database_url is required")
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	return nil
}

// Save writes the config as YAML
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
