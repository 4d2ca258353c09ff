// Package config loads bfkit settings from defaults, a YAML file, the
// environment and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ezrec/bfkit/compiler"
	"github.com/ezrec/bfkit/machine"
	"github.com/ezrec/bfkit/translate"
)

const (
	DefaultConfigFile = "bfkit.yaml"
	EnvPrefix         = "BFKIT_"
)

var f = translate.From

var ErrCapacity = errors.New(f("tape capacity must be positive"))

// Config is the resolved bfkit configuration.
type Config struct {
	TapeCapacity int            `koanf:"tape_capacity"` // Cells in compiled programs.
	Indent       string         `koanf:"indent"`        // Indentation unit of compiled programs.
	Halt         bool           `koanf:"halt"`          // Recognise '~' as halt.
	EOF          string         `koanf:"eof"`           // error, zero or keep.
	Macros       bool           `koanf:"macros"`        // Expand $(...) before parsing.
	Defines      map[string]int `koanf:"defines"`       // Integer constants for macros.
	Verbose      bool           `koanf:"verbose"`
	Trace        bool           `koanf:"trace"`
	Output       string         `koanf:"output"` // Compiled file; empty derives it from the input.
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"tape_capacity": compiler.DEFAULT_CAPACITY,
		"indent":        compiler.DEFAULT_INDENT,
		"halt":          true,
		"eof":           machine.EOF_ERROR.String(),
		"macros":        false,
		"verbose":       false,
		"trace":         false,
		"output":        "",
	}
}

// Load reads the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// An empty cfgFile uses DefaultConfigFile if it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// BFKIT_TAPE_CAPACITY -> tape_capacity
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags set on the command line override, and only those
			// naming a configuration key.
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !f.Changed || !k.Exists(key) {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values koanf cannot type check.
func (cfg *Config) Validate() error {
	if cfg.TapeCapacity <= 0 {
		return ErrCapacity
	}

	if _, err := cfg.EOFPolicy(); err != nil {
		return fmt.Errorf("eof %q: %w", cfg.EOF, err)
	}

	return nil
}

// EOFPolicy returns the configured machine EOF policy.
func (cfg *Config) EOFPolicy() (machine.EOFPolicy, error) {
	return machine.ParseEOFPolicy(cfg.EOF)
}
