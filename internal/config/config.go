package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure for the engine.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Blocking BlockingConfig `mapstructure:"blocking"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

// LogConfig defines logging verbosity and output style.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// BlockingConfig bounds the blocking-pop poll loop. Timeout is the default
// applied when a caller passes timeout 0; PollInterval is the sleep between
// polling passes.
type BlockingConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ScanConfig defines cursor-pagination defaults.
type ScanConfig struct {
	DefaultCount int `mapstructure:"default_count"` // page size when a scan passes no COUNT
}

// DispatchConfig selects the argument convention of the command dispatcher.
type DispatchConfig struct {
	Legacy bool `mapstructure:"legacy"` // legacy ordering for ZADD/SETEX arguments
}

// Load reads the configuration from a file and overrides it with environment
// variables.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MIRAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates viper with fallback values if they are not provided
// via file or ENV.
func setDefaults() {
	// Logger
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Blocking pop
	viper.SetDefault("blocking.timeout", "1000s")
	viper.SetDefault("blocking.poll_interval", "10ms")

	// Scan
	viper.SetDefault("scan.default_count", 10)

	// Dispatch
	viper.SetDefault("dispatch.legacy", false)
}
