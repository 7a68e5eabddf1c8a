package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir      string `yaml:"data_dir" mapstructure:"data_dir"`
	HideDataDir  bool   `yaml:"hide_data_dir" mapstructure:"hide_data_dir"`
	LogLevel     string `yaml:"log_level" mapstructure:"log_level"`
	Theme        string `yaml:"theme" mapstructure:"theme"`
	ConfirmClear bool   `yaml:"confirm_clear" mapstructure:"confirm_clear"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func DefaultConfig() *Config {
	return &Config{
		DataDir:      "personality_compass_data",
		HideDataDir:  true,
		LogLevel:     "info",
		Theme:        "green",
		ConfirmClear: true,
	}
}

// Load reads config.yaml from the working directory or the user config dir,
// then applies COMPASS_* environment overrides.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "compass"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "compass"))
	}

	v.SetEnvPrefix("COMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for key, val := range map[string]any{
		"data_dir":      cfg.DataDir,
		"hide_data_dir": cfg.HideDataDir,
		"log_level":     cfg.LogLevel,
		"theme":         cfg.Theme,
		"confirm_clear": cfg.ConfirmClear,
	} {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DataDir = os.ExpandEnv(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: log_level %q is invalid (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.Theme == "" {
		c.Theme = "green"
	}
	return nil
}

// DataFile is the path of the people document.
func (c *Config) DataFile() string {
	return filepath.Join(c.DataDir, "people_data.json")
}

// LogFile is where interactive sessions write their log.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "compass.log")
}
