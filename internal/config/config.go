// Package config provides loading and validation of SRP group parameters and
// tool settings for srp6a.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fzdarsky/srp6a/pkg/srp"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "SRP6A_LOG_LEVEL"
	EnvLogFormat = "SRP6A_LOG_FORMAT"
)

// ErrInvalidConfig wraps every error returned while loading a configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the srp6a configuration.
type Config struct {
	Definitions []GroupDefinition `yaml:"groups"`
	SRP         SRPSettings       `yaml:"srp"`
	Logging     LoggingSettings   `yaml:"logging"`

	groups []*srp.Group
}

// GroupDefinition describes one SRP group. An empty list of definitions
// selects the built-in RFC 5054 catalog.
type GroupDefinition struct {
	ID   int      `yaml:"id"`
	Name string   `yaml:"name"`
	N    HexLines `yaml:"n"`
	G    int64    `yaml:"g"`
	Hash string   `yaml:"hash"`
}

// SRPSettings contains protocol settings.
type SRPSettings struct {
	DefaultGroup int    `yaml:"default_group"`
	MinGroup     int    `yaml:"min_group"`
	XDerivation  string `yaml:"x_derivation"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HexLines is a hex string that may be written in YAML either as a single
// scalar or as a list of lines to be concatenated. Whitespace is ignored.
type HexLines string

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HexLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*h = HexLines(stripSpace(node.Value))
		return nil
	case yaml.SequenceNode:
		var b strings.Builder
		for _, line := range node.Content {
			if line.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: hex lines must be scalars", line.Line)
			}
			b.WriteString(stripSpace(line.Value))
		}
		*h = HexLines(b.String())
		return nil
	default:
		return fmt.Errorf("line %d: expected hex string or list of hex lines", node.Line)
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Load reads, parses and validates the configuration file.
//
//nolint:gosec // G304: Config path is from command-line argument
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	return Parse(data)
}

// Parse parses and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", ErrInvalidConfig, err)
	}

	return finish(&cfg)
}

// Default returns the configuration used when no file is given: the built-in
// catalog, group 3 as default and minimum, RFC 5054 x derivation. Environment
// overrides are not applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	groups, err := buildGroups(cfg.Definitions)
	if err != nil {
		// The built-in catalog always builds.
		panic(err)
	}
	cfg.groups = groups

	return cfg
}

// LoadOrDefault loads path. An empty path yields the defaults with
// environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return finish(&Config{})
	}
	return Load(path)
}

func finish(cfg *Config) (*Config, error) {
	applyEnv(cfg)
	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	groups, err := buildGroups(cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.groups = groups

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.Logging.Format = format
	}
}

func applyDefaults(cfg *Config) {
	if len(cfg.Definitions) == 0 {
		for _, grp := range srp.Groups() {
			cfg.Definitions = append(cfg.Definitions, Definition(grp))
		}
	}
	for i := range cfg.Definitions {
		if cfg.Definitions[i].Name == "" {
			cfg.Definitions[i].Name = fmt.Sprintf("group-%d", cfg.Definitions[i].ID)
		}
	}

	if cfg.SRP.MinGroup == 0 {
		cfg.SRP.MinGroup = srp.DefaultGroupID
	}
	if cfg.SRP.DefaultGroup == 0 {
		cfg.SRP.DefaultGroup = cfg.SRP.MinGroup
	}
	if cfg.SRP.XDerivation == "" {
		cfg.SRP.XDerivation = srp.XModeRFC5054.String()
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Definition converts a group into its configuration form.
func Definition(grp *srp.Group) GroupDefinition {
	return GroupDefinition{
		ID:   grp.ID,
		Name: grp.Name,
		N:    HexLines(srp.IntToHex(grp.N, 0)),
		G:    grp.G.Int64(),
		Hash: grp.Hash.String(),
	}
}

func buildGroups(defs []GroupDefinition) ([]*srp.Group, error) {
	groups := make([]*srp.Group, 0, len(defs))
	for i, def := range defs {
		grp, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("groups[%d]: %w", i, err)
		}
		groups = append(groups, grp)
	}
	return groups, nil
}

func (d GroupDefinition) build() (*srp.Group, error) {
	h, err := srp.ParseHash(d.Hash)
	if err != nil {
		return nil, err
	}
	return srp.ParseGroup(d.ID, d.Name, string(d.N), d.G, h)
}

// Groups returns the configured groups in file order.
func (c *Config) Groups() []*srp.Group {
	return append([]*srp.Group(nil), c.groups...)
}

// Group returns the configured group with the given ID.
func (c *Config) Group(id int) (*srp.Group, error) {
	return srp.FindGroup(c.groups, id)
}

// DefaultGroup returns the group used when none is requested.
func (c *Config) DefaultGroup() (*srp.Group, error) {
	return c.Group(c.SRP.DefaultGroup)
}

// SelectGroup returns the requested group if it is configured and not below
// the minimum, otherwise the minimum group. A zero request selects the
// default group.
func (c *Config) SelectGroup(requested int) (*srp.Group, error) {
	if requested == 0 {
		return c.DefaultGroup()
	}
	return srp.SelectFrom(c.groups, requested, c.SRP.MinGroup)
}

// XMode returns the configured x derivation.
func (c *Config) XMode() srp.XMode {
	mode, err := srp.ParseXMode(c.SRP.XDerivation)
	if err != nil {
		// Rejected by Validate.
		return srp.XModeRFC5054
	}
	return mode
}
