// Package config manages run configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config holds all configuration for one ingestion run. The zero value is not
// usable; start from DefaultConfig and override.
type Config struct {
	// OutputDir is the directory transcript documents are written into
	// (default: "transcripts"). One file per video, no subdirectories.
	OutputDir string
	// Languages is the ordered list of preferred transcript language codes.
	// The fetcher tries them in order and keeps the first available track.
	Languages []string
	// MinDelay and MaxDelay bound the uniform random politeness delay slept
	// after every item, including skipped ones (defaults: 5s and 20s).
	MinDelay time.Duration
	MaxDelay time.Duration
	// BatchSize is how many items are processed between long rests
	// (default: 100).
	BatchSize int
	// BatchRest is the fixed extra sleep after every BatchSize-th item,
	// skipped when that item is also the last (default: 300s).
	BatchRest time.Duration
	// APIKey enables the YouTube Data API enumerator. When empty, the
	// keyless ytdlp enumerator is used instead.
	APIKey string
}

// DefaultConfig returns configuration with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "transcripts",
		Languages: []string{"en"},
		MinDelay:  5 * time.Second,
		MaxDelay:  20 * time.Second,
		BatchSize: 100,
		BatchRest: 300 * time.Second,
	}
}

// fileConfig is the TOML representation. Delays are plain seconds so config
// files stay free of duration-string syntax.
type fileConfig struct {
	OutputDir        *string  `toml:"output_dir"`
	Languages        []string `toml:"languages"`
	MinDelaySeconds  *float64 `toml:"min_delay_seconds"`
	MaxDelaySeconds  *float64 `toml:"max_delay_seconds"`
	BatchSize        *int     `toml:"batch_size"`
	BatchRestSeconds *float64 `toml:"batch_rest_seconds"`
	APIKey           *string  `toml:"api_key"`
}

// Load returns the defaults overridden by the TOML file at path. An empty
// path checks the conventional locations (./ytscribe.toml, then
// ~/.config/ytscribe/ytscribe.toml) and silently keeps the defaults when no
// file exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	paths := []string{path}
	if path == "" {
		paths = []string{
			"ytscribe.toml",
			filepath.Join(os.Getenv("HOME"), ".config", "ytscribe", "ytscribe.toml"),
		}
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) && path == "" {
				continue
			}
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file %s: %w", p, err)
			}
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}

		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		cfg.apply(&fc)
		break
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overlays non-nil file values onto the config.
func (c *Config) apply(fc *fileConfig) {
	if fc.OutputDir != nil {
		c.OutputDir = *fc.OutputDir
	}
	if len(fc.Languages) > 0 {
		c.Languages = fc.Languages
	}
	if fc.MinDelaySeconds != nil {
		c.MinDelay = secondsToDuration(*fc.MinDelaySeconds)
	}
	if fc.MaxDelaySeconds != nil {
		c.MaxDelay = secondsToDuration(*fc.MaxDelaySeconds)
	}
	if fc.BatchSize != nil {
		c.BatchSize = *fc.BatchSize
	}
	if fc.BatchRestSeconds != nil {
		c.BatchRest = secondsToDuration(*fc.BatchRestSeconds)
	}
	if fc.APIKey != nil {
		c.APIKey = *fc.APIKey
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.MinDelay < 0 {
		return fmt.Errorf("min_delay_seconds must be non-negative")
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max_delay_seconds must be >= min_delay_seconds")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.BatchRest < 0 {
		return fmt.Errorf("batch_rest_seconds must be non-negative")
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("languages must list at least one language code")
	}
	for _, code := range c.Languages {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("languages: invalid code %q: %w", code, err)
		}
	}
	return nil
}
