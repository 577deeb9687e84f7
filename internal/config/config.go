package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Logging    LoggingConfig    `toml:"logging"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains storage layer settings.
// Backend selects the task store implementation: "memory" (default) or "bolt".
type StorageConfig struct {
	Backend string     `toml:"backend"`
	Bolt    BoltConfig `toml:"bolt"`
}

// BoltConfig contains bbolt-specific settings.
type BoltConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// DispatcherConfig identifies the tool dispatcher surface.
type DispatcherConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies TODO_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("TODO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TODO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if backend := os.Getenv("TODO_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if boltPath := os.Getenv("TODO_BOLT_PATH"); boltPath != "" {
		config.Storage.Bolt.Path = boltPath
	}
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "", "memory":
	case "bolt":
		if c.Storage.Bolt.Path == "" {
			issues = append(issues, "storage.bolt.path is required when storage.backend is bolt")
		}
	default:
		issues = append(issues, fmt.Sprintf("storage.backend must be memory or bolt (got %q)", c.Storage.Backend))
	}

	return issues
}
