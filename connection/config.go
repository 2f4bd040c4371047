/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the connections available to a provider.
type Config struct {
	// Default names the connection used when an entity map does not pick
	// one. Empty with exactly one configured connection means that one.
	Default string `yaml:"default"`

	// Connections maps connection names to their settings.
	Connections map[string]Settings `yaml:"connections"`
}

// Settings holds one named connection's driver configuration. Only the
// fields for the chosen driver matter; the rest stay zero.
type Settings struct {
	Driver string `yaml:"driver"`

	// DSN overrides the built connection string when set.
	DSN string `yaml:"dsn"`

	// SQLite
	Path string `yaml:"path"`

	// PostgreSQL
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`

	// DynamoDB
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	// Connection pool tuning for SQL drivers.
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// LoadConfig reads a YAML connection config. Environment references in the
// file ($VAR or ${VAR}) are expanded before parsing, so credentials can stay
// out of the file itself.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read connection config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML connection config bytes, expanding environment
// references first.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse connection config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config is internally consistent and fills the default
// connection name when it can be inferred.
func (c *Config) Validate() error {
	if len(c.Connections) == 0 {
		return fmt.Errorf("connection config lists no connections")
	}
	if c.Default == "" {
		if len(c.Connections) == 1 {
			for name := range c.Connections {
				c.Default = name
			}
		} else {
			return fmt.Errorf("connection config needs a default with %d connections configured", len(c.Connections))
		}
	}
	if _, ok := c.Connections[c.Default]; !ok {
		return fmt.Errorf("default connection %q is not configured", c.Default)
	}
	for name, s := range c.Connections {
		switch s.Driver {
		case "memory", "sqlite", "postgres", "dynamodb":
		case "":
			return fmt.Errorf("connection %q has no driver", name)
		default:
			return fmt.Errorf("connection %q has unsupported driver %q", name, s.Driver)
		}
	}
	return nil
}
