package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/harmonia/logging"
	"github.com/RyanBlaney/harmonia/theory/pitch"
	"github.com/RyanBlaney/harmonia/theory/scale"
)

// Environment variables that override file settings
const (
	EnvKey       = "HARMONIA_KEY"
	EnvMode      = "HARMONIA_MODE"
	EnvLimit     = "HARMONIA_LIMIT"
	EnvDepth     = "HARMONIA_DEPTH"
	EnvLogLevel  = "HARMONIA_LOG_LEVEL"
	EnvLogFormat = "HARMONIA_LOG_FORMAT"
)

// Log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds engine and CLI settings
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

// EngineConfig configures a recommendation engine
type EngineConfig struct {
	DefaultKey          pitch.Note   `json:"default_key" yaml:"default_key"`
	DefaultMode         scale.ModeID `json:"default_mode" yaml:"default_mode"`
	ComprehensiveLimit  int          `json:"comprehensive_limit" yaml:"comprehensive_limit"`
	DoubleDominantDepth int          `json:"double_dominant_depth" yaml:"double_dominant_depth"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

type OutputConfig struct {
	Color bool `json:"color" yaml:"color"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultKey:          pitch.C,
			DefaultMode:         scale.Ionian,
			ComprehensiveLimit:  10,
			DoubleDominantDepth: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

// Load reads a YAML config file on top of the defaults, then applies
// environment overrides. A missing file is not an error. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment without overwriting variables already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if key := os.Getenv(EnvKey); key != "" {
		c.Engine.DefaultKey = pitch.Note(key)
	}
	if mode := os.Getenv(EnvMode); mode != "" {
		c.Engine.DefaultMode = scale.ModeID(mode)
	}
	if limit := os.Getenv(EnvLimit); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLimit, err)
		}
		c.Engine.ComprehensiveLimit = n
	}
	if depth := os.Getenv(EnvDepth); depth != "" {
		n, err := strconv.Atoi(depth)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDepth, err)
		}
		c.Engine.DoubleDominantDepth = n
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.Logging.Format = format
	}
	return nil
}

// Validate checks the key and mode against the theory tables and the
// numeric settings against their ranges
func (c *Config) Validate() error {
	if _, err := pitch.IndexOf(c.Engine.DefaultKey); err != nil {
		return fmt.Errorf("invalid default key: %w", err)
	}
	if _, err := scale.LookupMode(c.Engine.DefaultMode); err != nil {
		return fmt.Errorf("invalid default mode: %w", err)
	}
	if c.Engine.ComprehensiveLimit < 1 {
		return fmt.Errorf("comprehensive limit must be positive, got %d", c.Engine.ComprehensiveLimit)
	}
	if c.Engine.DoubleDominantDepth < 1 {
		return fmt.Errorf("double dominant depth must be positive, got %d", c.Engine.DoubleDominantDepth)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != FormatText && c.Logging.Format != FormatJSON {
		return fmt.Errorf("invalid log format: %q (valid: %s, %s)", c.Logging.Format, FormatText, FormatJSON)
	}
	return nil
}
