package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"phpsa/analysis"
	"phpsa/builtins"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = ".phpsa.yml"

// Config is the analyzer configuration
type Config struct {
	Extensions []string       `yaml:"extensions"`
	Trace      TraceConfig    `yaml:"trace"`
	Analysis   AnalysisConfig `yaml:"analysis"`
	Output     OutputConfig   `yaml:"output"`
}

// TraceConfig controls the debug trace channel
type TraceConfig struct {
	Enabled bool     `yaml:"enabled"`
	Filters []string `yaml:"filters"`
}

// AnalysisConfig tunes the checks
type AnalysisConfig struct {
	MaxDepth        int      `yaml:"max_depth"`
	UnusedVariables *bool    `yaml:"unused_variables"`
	Functions       []string `yaml:"functions"` // extension functions known to exist
	Classes         []string `yaml:"classes"`
}

// OutputConfig selects the report format
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	opts := analysis.DefaultOptions()
	unused := opts.UnusedVariables
	return &Config{
		Extensions: []string{".json"},
		Analysis: AnalysisConfig{
			MaxDepth:        opts.MaxDepth,
			UnusedVariables: &unused,
		},
		Output: OutputConfig{Format: FormatText},
	}
}

// Load reads the configuration at path. An empty path means DefaultFile,
// which may be missing.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration. Unset fields keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Analysis.MaxDepth < 0 {
		return fmt.Errorf("analysis.max_depth must not be negative, got %d", c.Analysis.MaxDepth)
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// Options returns the analysis options described by c
func (c *Config) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.MaxDepth = c.Analysis.MaxDepth
	if c.Analysis.UnusedVariables != nil {
		opts.UnusedVariables = *c.Analysis.UnusedVariables
	}
	return opts
}

// Builtins returns the standard builtins plus the configured extensions
func (c *Config) Builtins() *builtins.Registry {
	r := builtins.NewRegistry()
	r.RegisterNames(c.Analysis.Functions...)
	r.RegisterClass(c.Analysis.Classes...)
	return r
}

// Matches reports whether path has one of the configured extensions
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
