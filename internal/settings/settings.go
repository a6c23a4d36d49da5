// Package settings loads application settings: where the dataset files live
// and the defaults the query command falls back to.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional config file (neoscout.yaml in the working directory or
// $HOME/.neoscout), and NEOSCOUT_* environment variables. Command-line flags
// override all of it in the CLI.
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix turns e.g. data.neos into NEOSCOUT_DATA_NEOS.
const envPrefix = "NEOSCOUT"

// Settings holds the resolved application settings.
type Settings struct {
	// Data locates the two dataset files.
	Data struct {
		// NEOs is the path to the NEO CSV dataset.
		NEOs string `mapstructure:"neos"`
		// Approaches is the path to the close approach JSON dataset.
		Approaches string `mapstructure:"approaches"`
	} `mapstructure:"data"`

	// DefaultLimit caps query output when the caller gives no limit.
	// 0 means unbounded.
	DefaultLimit int `mapstructure:"default_limit"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	// --verbose and --quiet override it.
	LogLevel string `mapstructure:"log_level"`
}

// SlogLevel maps the configured level name to its slog level. Unknown names
// fall back to info.
func (s *Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load resolves settings from defaults, an optional config file, and the
// environment. A missing config file is not an error; a malformed one is.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("data.neos", "data/neos.csv")
	v.SetDefault("data.approaches", "data/cad.json")
	v.SetDefault("default_limit", 10)
	v.SetDefault("log_level", "info")

	v.SetConfigName("neoscout")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.neoscout")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only matches keys viper already knows; the defaults above
	// register every key this struct carries.

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if s.DefaultLimit < 0 {
		return nil, fmt.Errorf("default_limit must be non-negative, got %d", s.DefaultLimit)
	}
	return &s, nil
}
