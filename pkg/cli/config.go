package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level blisp.yaml configuration.
type Config struct {
	// Color controls diagnostic coloring: "auto" (default, on when stderr
	// is a terminal), "always" or "never".
	Color string `yaml:"color,omitempty"`

	// Prompt is the REPL prompt string.
	Prompt string `yaml:"prompt,omitempty"`

	// MaxSteps bounds evaluation when > 0. A program that runs past the
	// bound is reported as a runtime error instead of hanging forever.
	MaxSteps int64 `yaml:"max_steps,omitempty"`

	// History is the path of the REPL history database. Empty disables
	// history persistence.
	History string `yaml:"history,omitempty"`
}

// DefaultConfig returns the configuration used when no blisp.yaml exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a blisp.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses blisp.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for blisp.yaml starting from dir and walking up
// to parent directories, similar to how .gitignore is found.
// Returns the path to the config file if found, or empty string.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "blisp.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, "blisp.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be auto, always or never, got %q", path, c.Color)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%s: max_steps must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Prompt == "" {
		c.Prompt = "blisp> "
	}
}
