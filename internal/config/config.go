// Package config loads kanaz settings from flags, environment variables and
// an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KANAZ"

// Config holds application configuration.
type Config struct {
	DB           string      `mapstructure:"db"`            // SQLite event store path, empty for the XDG default
	StoreEnabled bool        `mapstructure:"store_enabled"` // record sessions and answers
	LogFile      string      `mapstructure:"log_file"`      // empty for the XDG state default
	LogLevel     string      `mapstructure:"log_level"`     // zap level name, or "off"
	Seed         uint64      `mapstructure:"seed"`          // 0 picks a random seed
	Data         Data        `mapstructure:"data"`
	Distractors  Distractors `mapstructure:"distractors"`
	Update       Update      `mapstructure:"update"`
}

// Data locates the two datasets. Empty means the embedded default.
type Data struct {
	Kana string `mapstructure:"kana"`
	Food string `mapstructure:"food"`
}

// Distractors tunes option generation.
type Distractors struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

// Update configures the release check.
type Update struct {
	Check bool   `mapstructure:"check"`
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db":        "db",
	"kana-data": "data.kana",
	"food-data": "data.food",
	"seed":      "seed",
	"log-level": "log_level",
}

// Load reads configuration. configFile overrides the default search path;
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("db", "")
	v.SetDefault("store_enabled", true)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("data.kana", "")
	v.SetDefault("data.food", "")
	v.SetDefault("distractors.max_attempts", 64)
	v.SetDefault("update.check", true)
	v.SetDefault("update.owner", "abhisek")
	v.SetDefault("update.repo", "kanaz")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if noStore, err := flags.GetBool("no-store"); err == nil && noStore {
			v.Set("store_enabled", false)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Distractors.MaxAttempts < 1 {
		return fmt.Errorf("distractors.max_attempts must be at least 1, got %d", c.Distractors.MaxAttempts)
	}
	if c.Update.Check && (c.Update.Owner == "" || c.Update.Repo == "") {
		return errors.New("update.owner and update.repo are required when update.check is on")
	}
	return nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/kanaz or ~/.config/kanaz.
func DefaultConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kanaz"), nil
}
