// Package config provides YAML configuration loading, defaults, and
// override merging for merge-checker. All optional fields are pointers to
// support merge semantics during configuration building.
package config

import "fmt"

// Config is the root configuration for merge-checker.
type Config struct {
	// Target is the branch whose mainline incorporates the work, e.g.
	// "main" or "origin/main". Empty means the current HEAD branch.
	Target *string `yaml:"target"`

	// Patterns restricts the checked remote branches to those matching at
	// least one glob pattern. Empty means all branches.
	Patterns []string `yaml:"patterns"`

	// Output selects the report format: "table" or "json".
	Output *string `yaml:"output"`
}

// Valid output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// CreateDefaultConfiguration returns a Config with all default values
// populated.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Target: stringPtr(""),
		Output: stringPtr(OutputTable),
	}
}

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Target != nil {
		dst.Target = src.Target
	}
	if src.Patterns != nil {
		dst.Patterns = src.Patterns
	}
	if src.Output != nil {
		dst.Output = src.Output
	}
}

func validate(cfg *Config) error {
	switch *cfg.Output {
	case OutputTable, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", *cfg.Output)
	}
}

func stringPtr(s string) *string { return &s }
