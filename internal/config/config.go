// Package config holds the settings of a wfroots run. Settings come from
// command-line flags and, only when explicitly requested, a YAML or TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/wfroots/internal/discovery"
	"github.com/indaco/wfroots/internal/openfiles"
	"github.com/pelletier/go-toml/v2"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Config is the main configuration structure for wfroots.
type Config struct {
	ScanRoots     []string `yaml:"scan-roots,omitempty" toml:"scan-roots,omitempty"`
	MaxDepth      *int     `yaml:"max-depth,omitempty" toml:"max-depth,omitempty"`
	ProcessClass  string   `yaml:"process,omitempty" toml:"process,omitempty"`
	Enumerator    string   `yaml:"enumerator,omitempty" toml:"enumerator,omitempty"`
	Signature     string   `yaml:"signature,omitempty" toml:"signature,omitempty"`
	Format        string   `yaml:"format,omitempty" toml:"format,omitempty"`
	SkipRunning   bool     `yaml:"skip-running,omitempty" toml:"skip-running,omitempty"`
	SkipInstalled bool     `yaml:"skip-installed,omitempty" toml:"skip-installed,omitempty"`
}

// Default returns the configuration used when no file or flag overrides it.
// ScanRoots stays empty so that discovery picks the platform defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.MaxDepth == nil {
		depth := discovery.DefaultMaxDepth
		c.MaxDepth = &depth
	}
	if c.ProcessClass == "" {
		c.ProcessClass = openfiles.DefaultProcessClass
	}
	if c.Enumerator == "" {
		c.Enumerator = openfiles.BackendLsof
	}
	if c.Signature == "" {
		c.Signature = discovery.DefaultSignaturePath
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

// Depth returns the configured max depth.
func (c *Config) Depth() int {
	if c.MaxDepth == nil {
		return discovery.DefaultMaxDepth
	}
	return *c.MaxDepth
}

// LoadFn is the loader used by the CLI; tests may replace it.
var LoadFn = Load

// Load reads the configuration file at path. The decoder is picked from the
// file extension: .yaml/.yml or .toml. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", ext)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Options converts the configuration into discovery options.
func (c *Config) Options() (discovery.Options, error) {
	sig, err := discovery.ParseSignature(c.Signature)
	if err != nil {
		return discovery.Options{}, err
	}

	return discovery.Options{
		Signature:     sig,
		MaxDepth:      c.Depth(),
		ProcessClass:  c.ProcessClass,
		ScanRoots:     c.ScanRoots,
		SkipRunning:   c.SkipRunning,
		SkipInstalled: c.SkipInstalled,
	}, nil
}
