// Package config loads settings for the otpauth command.
//
// Values are merged by viper in the usual order: command line flags, then
// OTPAUTH_* environment variables, then the optional config file, then
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g. OTPAUTH_SKEW.
const EnvPrefix = "OTPAUTH"

// ErrInvalid indicates a setting failed validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the command settings.
type Config struct {
	// Env selects the log format: "production" for JSON.
	Env string `mapstructure:"env" validate:"oneof=development production"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
	// Skew is the number of periods either side of now accepted by verify.
	// Zero accepts only the current period.
	Skew uint `mapstructure:"skew" validate:"lte=10"`
	// LabelMode is "after" or "before", choosing which side of an
	// "issuer:account" label becomes the display label.
	LabelMode string `mapstructure:"label_mode" validate:"oneof=after before"`
	// File is a path of newline-separated otpauth URIs, or "-" for stdin.
	File string `mapstructure:"file"`
}

var defaults = map[string]any{
	"env":        "development",
	"verbose":    false,
	"skew":       1,
	"label_mode": "after",
	"file":       "",
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"env":        "env",
	"verbose":    "verbose",
	"skew":       "skew",
	"label_mode": "label-mode",
	"file":       "file",
}

// Load builds a Config. path may be empty; flags may be nil. Only flags that
// exist in the set are bound, so each command can expose its own subset.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return &cfg, nil
}
