// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the tool configuration shared by the aiprog binaries.
type Config struct {
	// Tables configures the lookup-table overrides layered on top of
	// the bundled data.
	Tables TablesConfig `yaml:"tables"`

	// Viewer configures the interactive viewer.
	Viewer ViewerConfig `yaml:"viewer"`
}

// TablesConfig points at user-supplied lookup tables. All paths are
// optional; empty means "bundled data only".
type TablesConfig struct {
	// Names lists extra reverse-name tables (JSONC arrays of
	// strings), loaded in order after the bundled list.
	Names []string `yaml:"names"`

	// Catalog replaces the bundled class-definition catalog.
	Catalog string `yaml:"catalog"`

	// Translations replaces the bundled localization map.
	Translations string `yaml:"translations"`
}

// ViewerConfig holds interactive viewer preferences.
type ViewerConfig struct {
	// Theme selects the color theme. Values: "dark", "light".
	// Default: dark.
	Theme string `yaml:"theme"`

	// Tab is the pane shown on startup.
	// Values: "tree", "ai", "action", "behavior", "query".
	// Default: tree.
	Tab string `yaml:"tab"`

	// HarvestNames registers every string found in a loaded archive
	// into the reverse name table. Default: true.
	HarvestNames bool `yaml:"harvest_names"`
}

// Default returns the default configuration. These defaults are the
// complete configuration of a user with no config file; unlike the
// rest of the loading pipeline, nothing here is required.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Theme:        "dark",
			Tab:          "tree",
			HarvestNames: true,
		},
	}
}

// Load loads configuration from the file named by the AIPROG_CONFIG
// environment variable. Unlike [LoadFile] callers, Load tolerates the
// variable being unset: the tools are fully usable on the bundled
// tables alone, so no config means [Default].
func Load() (*Config, error) {
	path := os.Getenv("AIPROG_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment
// variables do not override config values; the only expansion
// performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// every configured path.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	for i, path := range c.Tables.Names {
		c.Tables.Names[i] = expandVars(path, vars)
	}
	c.Tables.Catalog = expandVars(c.Tables.Catalog, vars)
	c.Tables.Translations = expandVars(c.Tables.Translations, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	themes := []string{"dark", "light"}
	if !slices.Contains(themes, c.Viewer.Theme) {
		errs = append(errs, fmt.Errorf("viewer.theme must be one of: %v", themes))
	}

	tabs := []string{"tree", "ai", "action", "behavior", "query"}
	if !slices.Contains(tabs, c.Viewer.Tab) {
		errs = append(errs, fmt.Errorf("viewer.tab must be one of: %v", tabs))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
