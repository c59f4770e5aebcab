// Package config loads the vanity search configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/vanity-keygen/internal/store"
	"github.com/mahdiidarabi/vanity-keygen/pkg/keygen"
	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

// DefaultPath is the config file read when it exists and no other path is given.
const DefaultPath = "vanity.yaml"

// Config holds all configuration loaded from the YAML file and overlaid by flags.
type Config struct {
	Pattern          string        `yaml:"pattern"`
	CaseSensitive    bool          `yaml:"case_sensitive"`
	Workers          int           `yaml:"workers"` // 0 = one per CPU
	Scheme           string        `yaml:"scheme"`
	Output           string        `yaml:"output"`
	Note             string        `yaml:"note"`
	LogLevel         string        `yaml:"log_level"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults fills zero/empty fields with defaults. Workers stays 0 until Resolve so
// that an explicit worker count from flags can still be told apart.
func (c *Config) applyDefaults() {
	if c.Scheme == "" {
		c.Scheme = keygen.DefaultScheme
	}
	if c.Output == "" {
		c.Output = store.DefaultPath
	}
	if c.Note == "" {
		c.Note = vanity.DefaultNote
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ProgressInterval == 0 {
		c.ProgressInterval = vanity.DefaultProgressInterval
	}
}

// Load reads and parses the YAML config file at path.
// If the file does not exist, Load returns a default Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Search converts the config to a validated vanity.SearchConfig. A worker count of 0 means
// one worker per CPU.
func (c *Config) Search() (vanity.SearchConfig, error) {
	if c.Workers < 0 {
		return vanity.SearchConfig{}, &vanity.ConfigError{
			Field:  "workers",
			Reason: fmt.Sprintf("must be a positive integer, got %d", c.Workers),
		}
	}

	workers := c.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	search := vanity.SearchConfig{
		Pattern:       c.Pattern,
		CaseSensitive: c.CaseSensitive,
		Workers:       workers,
	}
	if err := search.Validate(); err != nil {
		return vanity.SearchConfig{}, err
	}
	return search, nil
}

// Level parses the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel, &vanity.ConfigError{Field: "log_level", Reason: err.Error()}
	}
	return level, nil
}

// KeyScheme resolves the configured key scheme.
func (c *Config) KeyScheme() (keygen.Scheme, error) {
	scheme, err := keygen.Lookup(c.Scheme)
	if err != nil {
		return keygen.Scheme{}, &vanity.ConfigError{Field: "scheme", Reason: err.Error()}
	}
	return scheme, nil
}
