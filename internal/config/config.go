// Package config holds the selection and policy configuration for one
// generation request: which namespace, profile, version, extensions and
// generator style to use, plus type-mapping overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"glgen/internal/registry"
)

// Config represents the complete configuration.
type Config struct {
	Namespace  string   `yaml:"namespace" json:"namespace" toml:"namespace"`
	Profile    string   `yaml:"profile" json:"profile" toml:"profile"`
	Version    string   `yaml:"version" json:"version" toml:"version"`
	Extensions []string `yaml:"extensions" json:"extensions" toml:"extensions"`
	Generator  string   `yaml:"generator" json:"generator" toml:"generator"`

	// Full disables all version/profile/extension gating and generates a
	// superset binding covering everything the document defines.
	Full bool `yaml:"full" json:"full" toml:"full"`

	Options      Options           `yaml:"options" json:"options" toml:"options"`
	TypeMappings map[string]string `yaml:"typeMappings" json:"typeMappings" toml:"typeMappings"`
}

// Options represents resolution policy.
type Options struct {
	// StrictExtensions turns an extension name absent from the registry
	// document into a hard error instead of silently contributing nothing.
	StrictExtensions bool `yaml:"strictExtensions" json:"strictExtensions" toml:"strictExtensions"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Namespace:    DefaultNamespace,
		Profile:      DefaultProfile,
		Version:      DefaultVersion,
		Generator:    DefaultGenerator,
		TypeMappings: map[string]string{},
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on
// extension) and merges it over the defaults.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing YAML config")
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing JSON config")
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return errors.Wrap(err, "parsing TOML config")
		}
	default:
		// Try YAML first, then JSON.
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return errors.New("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)
	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.Namespace != "" {
		c.Namespace = loaded.Namespace
	}
	if loaded.Profile != "" {
		c.Profile = loaded.Profile
	}
	if loaded.Version != "" {
		c.Version = loaded.Version
	}
	if loaded.Generator != "" {
		c.Generator = loaded.Generator
	}
	if len(loaded.Extensions) > 0 {
		c.Extensions = loaded.Extensions
	}
	if loaded.Full {
		c.Full = true
	}
	if loaded.Options.StrictExtensions {
		c.Options.StrictExtensions = true
	}
	for k, v := range loaded.TypeMappings {
		c.TypeMappings[k] = v
	}
}

// Filter returns the registry filter this configuration selects, or nil in
// full mode.
func (c *Config) Filter() *registry.Filter {
	if c.Full {
		return nil
	}
	return &registry.Filter{
		Version:    c.Version,
		Profile:    c.Profile,
		Extensions: c.Extensions,
	}
}
