/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for utilicss builds.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/utilicss/token"
)

// Config represents the build configuration.
type Config struct {
	// Input is the stylesheet entry point. When empty the build starts from
	// "@tailwind utilities;".
	Input string `yaml:"input"`

	// Output is the path the stylesheet is written to. Empty means stdout.
	Output string `yaml:"output"`

	// Content lists the sources scanned for class names.
	Content Content `yaml:"content"`

	// Presets are theme files layered over the built-in theme, in order.
	Presets []string `yaml:"presets"`

	// Theme holds the project's own token configuration.
	Theme ThemeConfig `yaml:"theme"`

	// Plugins overrides the default stage order.
	Plugins []PluginSpec `yaml:"plugins"`
}

// Content describes the content sources.
// It can be specified as a list of globs or as an object with a files key.
type Content struct {
	Files []string `yaml:"files"`
}

// UnmarshalYAML handles both list and object forms for Content.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&c.Files)
	}

	type rawContent Content
	return node.Decode((*rawContent)(c))
}

// ThemeConfig holds theme overrides and extensions.
// Categories at the top level replace the base category wholesale;
// categories under extend are merged key by key.
type ThemeConfig struct {
	Overrides *token.Theme
	Extend    *token.Theme
}

// UnmarshalYAML splits the extend key from the override categories.
func (tc *ThemeConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &token.ConfigError{Category: "theme", Message: "must be a mapping", Err: token.ErrMalformedCategory}
	}

	overrides := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "extend" {
			tc.Extend = token.NewTheme()
			if err := value.Decode(tc.Extend); err != nil {
				return err
			}
			continue
		}
		overrides.Content = append(overrides.Content, key, value)
	}

	tc.Overrides = token.NewTheme()
	return overrides.Decode(tc.Overrides)
}

// PluginSpec names one pipeline stage.
// It can be specified as a simple string or as an object with a condition.
type PluginSpec struct {
	// Name is the stage name or one of its PostCSS aliases.
	Name string `yaml:"name"`

	// When restricts the stage to an environment (e.g., "production").
	When string `yaml:"when"`

	// Options are passed to the stage constructor.
	Options map[string]string `yaml:"options"`
}

// UnmarshalYAML handles both string and object forms for PluginSpec.
func (p *PluginSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}

	type rawPluginSpec PluginSpec
	if err := node.Decode((*rawPluginSpec)(p)); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("plugin at line %d: missing name", node.Line)
	}
	return nil
}

// Enabled reports whether the plugin runs in the given environment.
func (p PluginSpec) Enabled(production bool) bool {
	switch strings.ToLower(p.When) {
	case "":
		return true
	case "production":
		return production
	case "development":
		return !production
	}
	return false
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}
