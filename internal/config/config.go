// Package config loads command-line settings from defaults, a config file,
// CHAPTERIZE_ environment variables and flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. CHAPTERIZE_LOG_LEVEL.
const EnvPrefix = "CHAPTERIZE"

// Output formats for parse results.
const (
	OutputJSON = "json"
	OutputText = "text"
)

// Config is the full command-line configuration.
type Config struct {
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Parse ParseConfig `mapstructure:"parse" yaml:"parse"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ParseConfig configures how books are parsed and reported.
type ParseConfig struct {
	ApplyLexicons bool   `mapstructure:"apply_lexicons" yaml:"apply_lexicons"`
	Concurrency   int    `mapstructure:"concurrency" yaml:"concurrency"`
	Output        string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
		Parse: ParseConfig{
			ApplyLexicons: false,
			Concurrency:   0, // runtime.NumCPU()
			Output:        OutputJSON,
		},
	}
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"log.level":            "log-level",
	"log.format":           "log-format",
	"log.output":           "log-output",
	"parse.apply_lexicons": "apply-lexicons",
	"parse.concurrency":    "concurrency",
	"parse.output":         "output",
}

// Load reads the configuration. cfgFile names an explicit config file; when
// empty, config.yaml is looked up in the working directory and in
// $HOME/.chapterize and is optional. Flags present in flags override
// everything else; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.output", defaults.Log.Output)
	v.SetDefault("parse.apply_lexicons", defaults.Parse.ApplyLexicons)
	v.SetDefault("parse.concurrency", defaults.Parse.Concurrency)
	v.SetDefault("parse.output", defaults.Parse.Output)

	// Environment variables with CHAPTERIZE_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.chapterize")
	}

	// Try to read config file (not required unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Parse.Output) {
	case OutputJSON, OutputText:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Parse.Output, OutputJSON, OutputText)
	}
	if c.Parse.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Parse.Concurrency)
	}
	return nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# chapterize configuration
# Every key can also be set through the environment, e.g. CHAPTERIZE_LOG_LEVEL=debug

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
