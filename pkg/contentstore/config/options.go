package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides.
//
//	SLOT_URL    - slot backend URL (see Config.BuildSlot), "none" disables persistence
//	SLOT_KEY    - slot key (default: "contentItems")
//	LOG_LEVEL   - debug, info, warn or error (default: "info")
//	ENVIRONMENT - runtime environment (default: "development")
//
// Unset variables keep their current value.
func WithEnv() Option {
	return func(c *Config) error {
		var env Config
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		c.merge(env)
		return nil
	}
}

// WithFile applies settings from a YAML, JSON, TOML or .env file. The format
// is chosen by file extension.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return errors.New("config file path is required")
		}
		var file Config
		if err := cleanenv.ReadConfig(path, &file); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		c.merge(file)
		return nil
	}
}

// WithSlotURL sets the slot backend URL
func WithSlotURL(slotURL string) Option {
	return func(c *Config) error {
		c.SlotURL = slotURL
		return nil
	}
}

// WithSlotKey sets the slot key
func WithSlotKey(key string) Option {
	return func(c *Config) error {
		if key == "" {
			return errors.New("slot key cannot be empty")
		}
		c.SlotKey = key
		return nil
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		if _, err := ParseLevel(level); err != nil {
			return err
		}
		c.LogLevel = level
		return nil
	}
}

// merge copies the non-empty fields of other into c
func (c *Config) merge(other Config) {
	if other.Environment != "" {
		c.Environment = other.Environment
	}
	if other.SlotURL != "" {
		c.SlotURL = other.SlotURL
	}
	if other.SlotKey != "" {
		c.SlotKey = other.SlotKey
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
