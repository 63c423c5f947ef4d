// Package config loads the service configuration. The rest of the
// application receives a *Config and never reads the environment itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the service needs at runtime
type Config struct {
	Port            int           `yaml:"port"`
	Secret          string        `yaml:"secret"`
	DBPath          string        `yaml:"db_path"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	BcryptCost      int           `yaml:"bcrypt_cost"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:            3003,
		DBPath:          "data/badger",
		TokenTTL:        time.Hour,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load builds a Config from the defaults, the optional YAML file at path and
// finally the environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = GetEnvInt("PORT", c.Port)
	c.Secret = GetEnvString("SECRET", c.Secret)
	c.DBPath = GetEnvString("DB_PATH", c.DBPath)
	c.TokenTTL = GetEnvDuration("TOKEN_TTL", c.TokenTTL)
	c.ShutdownTimeout = GetEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.LogLevel = GetEnvString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = GetEnvString("LOG_FORMAT", c.LogFormat)
	c.BcryptCost = GetEnvInt("BCRYPT_COST", c.BcryptCost)
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.TokenTTL < 0 {
		return errors.New("token_ttl must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}

// RequireSecret reports an error when no token secret is configured. Only the
// commands that issue or verify tokens need one.
func (c *Config) RequireSecret() error {
	if c.Secret == "" {
		return errors.New("secret must be set (config file or SECRET)")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
