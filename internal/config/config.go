package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// PHFWD_ENGINE_MAX_FORWARD_NODES.
const EnvPrefix = "PHFWD"

// Config holds all configuration for the forwarding engine
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// EngineConfig holds engine related configuration
type EngineConfig struct {
	// MaxForwardNodes and MaxBackwardNodes cap the size of each trie.
	// Zero means unlimited.
	MaxForwardNodes  int  `mapstructure:"max_forward_nodes"`
	MaxBackwardNodes int  `mapstructure:"max_backward_nodes"`
	PruneBackward    bool `mapstructure:"prune_backward"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds metrics related configuration
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.max_forward_nodes", 0)
	v.SetDefault("engine.max_backward_nodes", 0)
	v.SetDefault("engine.prune_backward", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "phonefwd")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.MaxForwardNodes < 0 {
		return fmt.Errorf("invalid max_forward_nodes: %d", c.Engine.MaxForwardNodes)
	}
	if c.Engine.MaxBackwardNodes < 0 {
		return fmt.Errorf("invalid max_backward_nodes: %d", c.Engine.MaxBackwardNodes)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace cannot be empty")
	}

	return nil
}
