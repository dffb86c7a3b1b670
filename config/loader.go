/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	ucfs "bennypowers.dev/utilicss/fs"
	"bennypowers.dev/utilicss/token"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "utilicss"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/utilicss.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem ucfs.Reader, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}
		return LoadFile(filesystem, configPath)
	}

	return nil, nil
}

// LoadFile reads a config from an explicit path.
// JSON files may contain comments and trailing commas.
func LoadFile(filesystem ucfs.Reader, path string) (*Config, error) {
	cfg := &Config{}
	if err := decodeFile(filesystem, path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem ucfs.Reader, rootDir string) (*Config, error) {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}

// LoadFrom loads path when given, otherwise searches rootDir, falling back
// to defaults.
func LoadFrom(filesystem ucfs.Reader, rootDir, path string) (*Config, error) {
	if path != "" {
		return LoadFile(filesystem, path)
	}
	return LoadOrDefault(filesystem, rootDir)
}

// decodeFile decodes YAML or JSON into v. JSON is a subset of YAML, so both
// go through yaml.v3, which keeps mapping order for token tables.
func decodeFile(filesystem ucfs.Reader, path string, v any) error {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Registry builds the token registry: the built-in theme, then each preset,
// then the project's overrides, then the project's extensions.
func (c *Config) Registry(filesystem ucfs.Reader, rootDir string) (*token.Registry, error) {
	theme := token.DefaultTheme()
	for _, preset := range c.Presets {
		path := preset
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, path)
		}
		var layer ThemeConfig
		if err := decodeFile(filesystem, path, &layer); err != nil {
			return nil, fmt.Errorf("preset %s: %w", preset, err)
		}
		theme = layer.apply(theme)
	}
	theme = c.Theme.apply(theme)
	return token.Load(theme), nil
}

func (tc ThemeConfig) apply(base *token.Theme) *token.Theme {
	theme := base.Override(tc.Overrides)
	if tc.Extend != nil {
		theme = token.Merge(theme, tc.Extend)
	}
	return theme
}

// ExpandContent expands Content.Files against rootDir and returns the
// matching files, sorted and deduplicated. Patterns prefixed with "!" exclude
// files. Patterns that match nothing are returned in empty so callers can
// report them.
func (c *Config) ExpandContent(filesystem ucfs.Reader, rootDir string) (files, empty []string, err error) {
	var includes, excludes []string
	for _, p := range c.Content.Files {
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			excludes = append(excludes, absPattern(rootDir, rest))
			continue
		}
		includes = append(includes, p)
	}

	seen := make(map[string]bool)
	for _, p := range includes {
		matches, err := expandFilePath(filesystem, rootDir, p)
		if err != nil {
			return nil, nil, fmt.Errorf("content pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			empty = append(empty, p)
			continue
		}
		for _, m := range matches {
			if seen[m] || excluded(excludes, m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, empty, nil
}

func absPattern(rootDir, pattern string) string {
	pattern = strings.TrimPrefix(pattern, "./")
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}
	return pattern
}

func excluded(patterns []string, path string) bool {
	for _, p := range patterns {
		if matchDoublestar(p, path) {
			return true
		}
	}
	return false
}

// expandFilePath expands a single file path which may contain globs.
// A literal path that does not exist expands to nothing.
func expandFilePath(filesystem ucfs.Reader, rootDir, pattern string) ([]string, error) {
	pattern = absPattern(rootDir, pattern)

	if !containsGlob(pattern) {
		if !filesystem.Exists(pattern) {
			return nil, nil
		}
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern against the filesystem.
func expandGlob(filesystem ucfs.Reader, pattern string) ([]string, error) {
	// Find the base directory (non-glob prefix)
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}
	if !filesystem.Exists(baseDir) {
		return nil, nil
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = strings.TrimPrefix(relPattern, string(filepath.Separator))

	var matches []string

	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't read
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = strings.TrimPrefix(relPath, string(filepath.Separator))

		if matchDoublestar(relPattern, relPath) {
			matches = append(matches, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return matches, nil
}

// matchDoublestar provides ** glob matching using the doublestar library.
func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
