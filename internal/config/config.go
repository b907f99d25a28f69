// Package config loads formblock CLI settings from flags, FORMBLOCK_*
// environment variables and an optional YAML/JSON config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (FORMBLOCK_SEPARATOR, ...).
const EnvPrefix = "FORMBLOCK"

// Config holds CLI settings. Globals are exposed to wrapper templates; viper
// lowercases their keys.
type Config struct {
	SkipMarkers []string       `mapstructure:"skip_markers"`
	Wrapper     string         `mapstructure:"wrapper"`
	Separator   string         `mapstructure:"separator"`
	StripMarkup bool           `mapstructure:"strip_markup"`
	Pretty      bool           `mapstructure:"pretty"`
	IDKey       string         `mapstructure:"id_key"`
	Globals     map[string]any `mapstructure:"globals"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}

// LoggerConfig configures the CLI logger.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("skip_markers", []string{"REX_MEDIA", "REX_LINK"})
	v.SetDefault("separator", "\n")
	v.SetDefault("id_key", "id")
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
}

// Load reads the optional config file, binds flags and the environment, and
// returns the validated configuration. Flags registered under a config key
// (for example "skip-marker" -> skip_markers) must be listed in bindings.
func Load(v *viper.Viper, file string, flags *pflag.FlagSet, bindings map[string]string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	for key, flagName := range bindings {
		if flags == nil {
			break
		}
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("config: bind flag %s: %w", flagName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logger.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unsupported logger format %q", c.Logger.Format)
	}
	if strings.TrimSpace(c.IDKey) == "" {
		return errors.New("config: id_key must not be empty")
	}
	return nil
}
