// Package config loads batchmutd's configuration: precedence is
// environment variables > config file > defaults, matching the teacher's
// layering convention (internal/config/config.go in the teacher repo).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the batch mutation engine daemon.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Transport   TransportConfig   `toml:"transport"`
	Log         LogConfig         `toml:"log"`
	Engine      EngineConfig      `toml:"engine"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
	Idempotency IdempotencyConfig `toml:"idempotency"`
}

// ServerConfig holds process metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds HTTP transport settings.
type TransportConfig struct {
	Port        string `toml:"port"`         // HTTP listen port (default: 8980).
	Host        string `toml:"host"`         // HTTP listen address (default: "0.0.0.0").
	CORSOrigins string `toml:"cors_origins"` // Comma-separated list of allowed CORS origins (default: "*").
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// EngineConfig bounds plan execution (spec.md §4.5/§4.6).
type EngineConfig struct {
	MaxChanges    int    `toml:"max_changes"`     // Maximum operations per plan (spec.md §4.5 check 1).
	ChunkMode     string `toml:"chunk_mode"`       // "threshold" or "per-operation".
	ChunkSize     int    `toml:"chunk_size"`       // Sub-commands per chunk in threshold mode.
	SettleMillis  int    `toml:"settle_millis"`    // Inter-chunk settle delay before verification.
	TimeoutSecond int    `toml:"timeout_seconds"`  // Plan-level execution timeout.
}

// MaintenanceConfig holds orphan-sweep scheduling (spec.md §4.8).
type MaintenanceConfig struct {
	Enabled       bool `toml:"enabled"`        // Enable scheduled orphan sweeps.
	IntervalHours int  `toml:"interval_hours"` // How often to run (in hours).
}

// IdempotencyConfig bounds the prior-result cache (spec.md §5).
type IdempotencyConfig struct {
	Capacity int `toml:"capacity"`    // Maximum cached entries.
	TTLHours int `toml:"ttl_hours"`   // Entry time-to-live.
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. BATCHMUT_CONFIG environment variable
//  3. ./batchmut.toml (current directory)
//  4. ~/.config/batchmut/batchmut.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Name:    "batchmutd",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Port:        "8980",
			Host:        "0.0.0.0",
			CORSOrigins: "*",
		},
		Log: LogConfig{
			Level: "info",
		},
		Engine: EngineConfig{
			MaxChanges:    500,
			ChunkMode:     "threshold",
			ChunkSize:     50,
			SettleMillis:  20,
			TimeoutSecond: 30,
		},
		Maintenance: MaintenanceConfig{
			Enabled:       false,
			IntervalHours: 6,
		},
		Idempotency: IdempotencyConfig{
			Capacity: 1000,
			TTLHours: 24,
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath determines which config file to use. Returns empty
// string if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("BATCHMUT_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("batchmut.toml"); err == nil {
		return "batchmut.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/batchmut/batchmut.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty.
func (c *Config) applyEnv() {
	envOverride("BATCHMUT_HOST", &c.Transport.Host)
	envOverride("BATCHMUT_PORT", &c.Transport.Port)
	envOverride("BATCHMUT_CORS_ORIGINS", &c.Transport.CORSOrigins)
	envOverride("BATCHMUT_LOG_LEVEL", &c.Log.Level)
	envOverride("BATCHMUT_CHUNK_MODE", &c.Engine.ChunkMode)

	if v := os.Getenv("BATCHMUT_MAX_CHANGES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			c.Engine.MaxChanges = n
		}
	}
	if v := os.Getenv("BATCHMUT_CHUNK_SIZE"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			c.Engine.ChunkSize = n
		}
	}
	if v := os.Getenv("BATCHMUT_MAINTENANCE_ENABLED"); v != "" {
		c.Maintenance.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("BATCHMUT_MAINTENANCE_INTERVAL_HOURS"); v != "" {
		var hours int
		if _, err := fmt.Sscanf(v, "%d", &hours); err == nil && hours > 0 {
			c.Maintenance.IntervalHours = hours
		}
	}
}

// Validate checks that configuration values are internally consistent.
func (c *Config) Validate() error {
	switch c.Engine.ChunkMode {
	case "threshold", "per-operation":
	default:
		return fmt.Errorf("invalid engine.chunk_mode: %q (must be \"threshold\" or \"per-operation\")", c.Engine.ChunkMode)
	}
	if c.Engine.MaxChanges <= 0 {
		return fmt.Errorf("engine.max_changes must be positive")
	}
	if c.Engine.ChunkSize <= 0 {
		return fmt.Errorf("engine.chunk_size must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	return nil
}

// SettleDuration returns the configured inter-chunk settle delay.
func (c *Config) SettleDuration() time.Duration {
	return time.Duration(c.Engine.SettleMillis) * time.Millisecond
}

// TimeoutDuration returns the configured plan execution timeout.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Engine.TimeoutSecond) * time.Second
}

// IdempotencyTTL returns the configured idempotency cache entry lifetime.
func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.Idempotency.TTLHours) * time.Hour
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
