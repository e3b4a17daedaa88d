package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Key decomposition modes
const (
	ModeRunes    = "runes"
	ModeBytes    = "bytes"
	ModeSegments = "segments"
)

// Config holds all configuration for the trie tooling
type Config struct {
	Keys    KeysConfig    `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
	Dataset DatasetConfig `mapstructure:"dataset"`
}

// KeysConfig selects how keys are split into key bits
type KeysConfig struct {
	Mode      string `mapstructure:"mode"`
	Separator string `mapstructure:"separator"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// DatasetConfig holds the files loaded into the index
type DatasetConfig struct {
	Files   []string `mapstructure:"files"`
	Workers int      `mapstructure:"workers"`
}

// LoadConfig loads configuration from file and environment variables.
// Environment variables use the TRIE_ prefix, e.g. TRIE_KEYS_MODE.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("trie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("keys.mode", ModeRunes)
	v.SetDefault("keys.separator", "/")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	v.SetDefault("dataset.files", []string{})
	v.SetDefault("dataset.workers", 4)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Keys.Mode {
	case ModeRunes, ModeBytes:
	case ModeSegments:
		if c.Keys.Separator == "" {
			return fmt.Errorf("keys separator is required for mode %q", ModeSegments)
		}
	default:
		return fmt.Errorf("unknown keys mode: %q", c.Keys.Mode)
	}

	if c.Dataset.Workers <= 0 {
		return fmt.Errorf("invalid dataset workers: %d", c.Dataset.Workers)
	}

	return nil
}
