package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for by Find.
const FileName = "simple.toml"

// Config holds settings for the simple CLI.
type Config struct {
	// Program names the catalog program to run when none is given.
	Program string `toml:"program"`

	// Format is the trace format, "text" or "yaml".
	Format string `toml:"format"`

	// MaxSteps aborts a small-step run after this many steps. Zero means no
	// limit.
	MaxSteps int `toml:"max_steps"`

	// Width truncates trace lines; zero disables truncation.
	Width int `toml:"width"`

	// NoColor disables styled trace output.
	NoColor bool `toml:"no_color"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Program: "loop",
		Format:  "text",
	}
}

// Load decodes a config file on top of the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// Find searches for simple.toml starting from dir and walking up to parent
// directories, stopping at a .git boundary. It returns ("", nil, nil) when
// no file is found.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// ApplyEnv overrides settings from SIMPLE_PROGRAM, SIMPLE_FORMAT and
// SIMPLE_MAX_STEPS.
func (c *Config) ApplyEnv() error {
	if program := os.Getenv("SIMPLE_PROGRAM"); program != "" {
		c.Program = program
	}
	if format := os.Getenv("SIMPLE_FORMAT"); format != "" {
		c.Format = format
	}
	if steps := os.Getenv("SIMPLE_MAX_STEPS"); steps != "" {
		n, err := strconv.Atoi(steps)
		if err != nil {
			return fmt.Errorf("SIMPLE_MAX_STEPS: %w", err)
		}
		c.MaxSteps = n
	}
	return c.Validate()
}

// Validate rejects settings the CLI cannot honor.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}
