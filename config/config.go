// Package config loads and validates service configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Database   DatabaseConfig   `json:"database" yaml:"database"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
}

// ServerConfig contains the HTTP listener parameters
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// DatabaseConfig locates the SQLite journal
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// SimulationConfig holds the default account parameters for backtests
// started without explicit overrides
type SimulationConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	Leverage       float64 `json:"leverage" yaml:"leverage"`
	RiskFactor     float64 `json:"risk_factor" yaml:"risk_factor"`
	LotSize        float64 `json:"lot_size" yaml:"lot_size"`
	SpreadPips     float64 `json:"spread_pips" yaml:"spread_pips"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// content), applies environment overrides and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load returns the config at path, or the defaults (with environment
// overrides) when path is empty.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyEnv overrides file values from the environment. FXSIM_ADDR and
// FXSIM_DB_PATH take precedence so containers can redirect both without
// touching the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("FXSIM_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("FXSIM_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("FXSIM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json'")
	}
	if c.Simulation.InitialBalance <= 0 {
		return fmt.Errorf("simulation.initial_balance must be positive")
	}
	if c.Simulation.Leverage <= 0 {
		return fmt.Errorf("simulation.leverage must be positive")
	}
	if c.Simulation.RiskFactor <= 0 {
		return fmt.Errorf("simulation.risk_factor must be positive")
	}
	if c.Simulation.LotSize <= 0 {
		return fmt.Errorf("simulation.lot_size must be positive")
	}
	if c.Simulation.SpreadPips < 0 {
		return fmt.Errorf("simulation.spread_pips must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Path: "./fxsim.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Simulation: SimulationConfig{
			InitialBalance: 10000,
			Leverage:       100,
			RiskFactor:     1.0,
			LotSize:        0.01,
			SpreadPips:     2.0,
		},
	}
}
