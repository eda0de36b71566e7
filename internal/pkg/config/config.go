// Package config holds the tunables of the match checker.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSteps   = 200_000
	DefaultMaxDepth   = 512
	DefaultWitnessCap = 3
	DefaultCacheSize  = 1024
)

// Limits bounds the work the usefulness engine may do for a single match.
type Limits struct {
	MaxSteps int `yaml:"max_steps"`
	MaxDepth int `yaml:"max_depth"`
}

type Config struct {
	Path       string `yaml:"-"`
	Limits     Limits `yaml:"limits"`
	WitnessCap int    `yaml:"witness_cap"`
	// CacheSize of 0 disables the verdict cache.
	CacheSize int `yaml:"cache_size"`
	// Workers of 0 means one worker per CPU.
	Workers int `yaml:"workers"`
}

func Default() Config {
	return Config{
		Limits: Limits{
			MaxSteps: DefaultMaxSteps,
			MaxDepth: DefaultMaxDepth,
		},
		WitnessCap: DefaultWitnessCap,
		CacheSize:  DefaultCacheSize,
	}
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads a YAML config file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs ValidationError
	if c.Limits.MaxSteps <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_steps must be positive, got %d", c.Limits.MaxSteps))
	}
	if c.Limits.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_depth must be positive, got %d", c.Limits.MaxDepth))
	}
	if c.WitnessCap <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("witness_cap must be positive, got %d", c.WitnessCap))
	}
	if c.CacheSize < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("cache_size must not be negative, got %d", c.CacheSize))
	}
	if c.Workers < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
