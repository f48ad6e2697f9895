// Package config loads the TOML configuration of the combinator command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding the configuration path.
const EnvVar = "COMBINATOR_CONFIG"

var ErrInvalid = errors.New("invalid configuration")

// Config holds the complete command configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Output  OutputConfig  `toml:"output"`
	Grammar GrammarConfig `toml:"grammar"`
}

// LogConfig holds logging settings
type LogConfig struct {
	// Verbosity is passed to commonlog.Configure: 0 logs errors only, each
	// step adds a level.
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// OutputConfig holds result output settings
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// GrammarConfig holds defaults for ebnf parse
type GrammarConfig struct {
	Start string `toml:"start"`
	// Skip selects what non-lexical productions skip: "whitespace" or "none".
	Skip  string `toml:"skip"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Color: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Unknown keys are an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads the file named by $COMBINATOR_CONFIG, or the first of
// ./combinator.toml and ~/.config/combinator/config.toml that exists. It
// returns Default() when there is none.
func Find() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	candidates := []string{"combinator.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "combinator", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Grammar.Skip == "" {
		c.Grammar.Skip = "whitespace"
	}
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("%w: log.verbosity must not be negative", ErrInvalid)
	}
	switch c.Grammar.Skip {
	case "whitespace", "none":
	default:
		return fmt.Errorf("%w: grammar.skip must be \"whitespace\" or \"none\", got %q", ErrInvalid, c.Grammar.Skip)
	}
	return nil
}
