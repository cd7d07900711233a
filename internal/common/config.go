// Package common provides shared configuration, logging, and version
// utilities for builddeck-mcp.
package common

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// MinPageLimit and MaxPageLimit bound the configurable default page size.
	MinPageLimit = 1
	MaxPageLimit = 100

	// MinTimeout and MaxTimeout bound the upstream request timeout.
	MinTimeout = 1 * time.Second
	MaxTimeout = 60 * time.Second
)

// Config holds all builddeck-mcp configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// UpstreamConfig holds the BuildDeck API connection settings.
type UpstreamConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	PageLimit int    `toml:"page_limit"`
	Debug     bool   `toml:"debug"`
}

// GetTimeout parses and returns the timeout duration, clamped to
// [MinTimeout, MaxTimeout]. Unparseable values fall back to 30s.
func (c *UpstreamConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	if d < MinTimeout {
		return MinTimeout
	}
	if d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults. The upstream
// base URL has no default and must be supplied by file or environment.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "BuildDeck-MCP",
			Port: "4280",
		},
		Upstream: UpstreamConfig{
			Timeout:   "30s",
			PageLimit: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/builddeck-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from a TOML file (missing file is fine,
// defaults apply), applies environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found, use defaults
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if u := os.Getenv("BUILDDECK_API_URL"); u != "" {
		cfg.Upstream.BaseURL = u
	}
	if t := os.Getenv("BUILDDECK_TIMEOUT"); t != "" {
		cfg.Upstream.Timeout = t
	}
	if pl := os.Getenv("BUILDDECK_PAGE_LIMIT"); pl != "" {
		if n, err := strconv.Atoi(pl); err == nil {
			cfg.Upstream.PageLimit = n
		}
	}
	if d := os.Getenv("BUILDDECK_DEBUG"); d != "" {
		if b, err := strconv.ParseBool(d); err == nil {
			cfg.Upstream.Debug = b
		}
	}
	if port := os.Getenv("BUILDDECK_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("BUILDDECK_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks required settings and clamps tunables into their bounds.
// The upstream base URL must be an absolute http(s) URL; a trailing slash
// is stripped so path joining stays deterministic.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required (set upstream.base_url or BUILDDECK_API_URL)")
	}

	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil {
		return fmt.Errorf("upstream base URL %q is not a valid URL: %w", c.Upstream.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream base URL %q must be absolute with an http or https scheme", c.Upstream.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("upstream base URL %q has no host", c.Upstream.BaseURL)
	}
	c.Upstream.BaseURL = strings.TrimRight(c.Upstream.BaseURL, "/")

	if c.Upstream.PageLimit < MinPageLimit {
		c.Upstream.PageLimit = MinPageLimit
	}
	if c.Upstream.PageLimit > MaxPageLimit {
		c.Upstream.PageLimit = MaxPageLimit
	}

	if c.Upstream.Debug {
		c.Logging.Level = "debug"
	}

	return nil
}
