/*
Package config loads the optional YAML run configuration.
*/
package config

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v2"
)

// output formats
const (
	FormatCSV  = "csv"
	FormatXlsx = "xlsx"
)

// Formats lists the supported output formats.
var Formats = []string{FormatCSV, FormatXlsx}

// Config holds the settings a run reads from its YAML file. Zero values mean
// "use the default".
type Config struct {
	OutputRoot      string   `yaml:"output_root"`
	StripPrefix     *string  `yaml:"strip_prefix"`
	BaselineMarkers []string `yaml:"baseline_markers"`
	Formats         []string `yaml:"formats"`
	Input           string   `yaml:"input"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	prefix := "data/"
	return Config{
		OutputRoot:      "data",
		StripPrefix:     &prefix,
		BaselineMarkers: []string{"INFO", "WARN"},
		Formats:         []string{FormatCSV},
		Input:           "output.txt",
	}
}

// Load reads path and overlays its values on Defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return cfg, err
	}
	var fromFile Config
	if err := yaml.UnmarshalStrict(data, &fromFile); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.merge(fromFile)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.OutputRoot != "" {
		c.OutputRoot = o.OutputRoot
	}
	if o.StripPrefix != nil {
		c.StripPrefix = o.StripPrefix
	}
	if len(o.BaselineMarkers) > 0 {
		c.BaselineMarkers = o.BaselineMarkers
	}
	if len(o.Formats) > 0 {
		c.Formats = o.Formats
	}
	if o.Input != "" {
		c.Input = o.Input
	}
}

// Validate checks formats and markers.
func (c Config) Validate() error {
	for _, f := range c.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("format %q not supported, choose from %v", f, Formats)
		}
	}
	for _, m := range c.BaselineMarkers {
		if m == "" {
			return fmt.Errorf("baseline markers must not be empty")
		}
	}
	return nil
}

// Prefix returns the run name prefix to strip, or "".
func (c Config) Prefix() string {
	if c.StripPrefix == nil {
		return ""
	}
	return *c.StripPrefix
}
