// Package config loads the revdiff YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/movlib/go-diff/diffmatchpatch"
)

// Config holds all revdiff configuration.
type Config struct {
	Diff    DiffConfig    `yaml:"diff"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// DiffConfig configures the diff engine.
type DiffConfig struct {
	Timeout            string `yaml:"timeout"` // 0 disables the deadline
	HalfMatchMinLength int    `yaml:"half_match_min_length"`
	Granularity        string `yaml:"granularity"` // chars, words, lines
}

// OutputConfig configures how edit scripts are rendered.
type OutputConfig struct {
	Format       string `yaml:"format"` // html, text, unified, json
	ContextLines int    `yaml:"context_lines"`
}

// StorageConfig configures the revision store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Accepted enumeration values.
var (
	Granularities = []string{"chars", "words", "lines"}
	Formats       = []string{"html", "text", "unified", "json"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"json", "console"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Diff: DiffConfig{
			Timeout:            "1s",
			HalfMatchMinLength: 100,
			Granularity:        "words",
		},
		Output: OutputConfig{
			Format:       "html",
			ContextLines: diffmatchpatch.DefaultContextLines,
		},
		Storage: StorageConfig{
			Path: "revisions.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("REVDIFF_DB"); path != "" {
		c.Storage.Path = path
	}
	if level := os.Getenv("REVDIFF_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if d, err := time.ParseDuration(c.Diff.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("diff.timeout: %w", err))
	} else if d < 0 {
		errs = append(errs, fmt.Errorf("diff.timeout: must not be negative, got %s", d))
	}
	if c.Diff.HalfMatchMinLength < 0 {
		errs = append(errs, fmt.Errorf("diff.half_match_min_length: must not be negative, got %d", c.Diff.HalfMatchMinLength))
	}
	errs = append(errs,
		oneOf("diff.granularity", c.Diff.Granularity, Granularities),
		oneOf("output.format", c.Output.Format, Formats),
		oneOf("logging.level", c.Logging.Level, LogLevels),
		oneOf("logging.format", c.Logging.Format, LogFormats),
	)
	if c.Output.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("output.context_lines: must not be negative, got %d", c.Output.ContextLines))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path: must be set"))
	}

	// errors.Join drops the nil entries.
	return errors.Join(errs...)
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %q is not one of %v", key, value, allowed)
}

// GetTimeout returns the diff timeout as a duration.
func (d DiffConfig) GetTimeout() time.Duration {
	timeout, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return time.Second
	}
	return timeout
}

// NewEngine returns a diff engine configured with these settings.
func (d DiffConfig) NewEngine() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = d.GetTimeout()
	dmp.HalfMatchMinLength = d.HalfMatchMinLength
	return dmp
}
