package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "dfacheck.yaml"

// Config is the optional on-disk configuration. Command-line flags override it.
type Config struct {
	LogLevel string       `yaml:"log_level" json:"log_level"`
	Server   ServerConfig `yaml:"server" json:"server"`
	Cache    CacheConfig  `yaml:"cache" json:"cache"`
	MCP      MCPConfig    `yaml:"mcp" json:"mcp"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address string `yaml:"address" json:"address"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
}

// CacheConfig selects the verdict cache backend: none, memory or redis.
type CacheConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the Redis verdict cache.
type RedisConfig struct {
	Address  string        `yaml:"address" json:"address"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Server:   ServerConfig{Address: ":8080", Metrics: true},
		Cache: CacheConfig{
			Backend: "none",
			Redis:   RedisConfig{Address: "localhost:6379", Prefix: "dfacheck:verdict:"},
		},
		MCP: MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q (want none, memory or redis)", c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case "", "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	return nil
}
