/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/utilicss/internal/mapfs"
	"bennypowers.dev/utilicss/testutil"
	"bennypowers.dev/utilicss/token"
)

func TestLoad_SimpleYAML(t *testing.T) {
	mfs := testutil.Project(t, "config/simple")

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "styles/main.css", cfg.Input)
	assert.Equal(t, "dist/app.css", cfg.Output)
	assert.Equal(t, []string{"*.html", "./src/**/*.rs"}, cfg.Content.Files)

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, PluginSpec{Name: "postcss-import"}, cfg.Plugins[0])
	assert.Equal(t, "cssnano", cfg.Plugins[1].Name)
	assert.False(t, cfg.Plugins[1].Enabled(false))
	assert.True(t, cfg.Plugins[1].Enabled(true))

	require.NotNil(t, cfg.Theme.Overrides)
	v, ok := cfg.Theme.Overrides.Table(token.MaxWidth).Get("prose")
	assert.True(t, ok)
	assert.Equal(t, "60ch", v)
	assert.False(t, cfg.Theme.Overrides.Has(token.Spacing), "extend must not leak into overrides")

	require.NotNil(t, cfg.Theme.Extend)
	v, _ = cfg.Theme.Extend.Table(token.Spacing).Get("13")
	assert.Equal(t, "3.25rem", v)
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := testutil.Project(t, "config/jsonc")

	cfg, err := Load(mfs, "/project")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"index.html"}, cfg.Content.Files)
	v, ok := cfg.Theme.Extend.Table(token.MaxHeight).Get("90")
	assert.True(t, ok)
	assert.Equal(t, "22.5rem", v)
}

func TestLoad_NotFound(t *testing.T) {
	cfg, err := Load(mapfs.New(), "/nowhere")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = LoadOrDefault(mapfs.New(), "/nowhere")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Malformed(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/utilicss.yaml", "theme:\n  extend:\n    spacing: 4px\n", 0644)

	_, err := Load(mfs, "/project")
	require.Error(t, err)

	var cfgErr *token.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, token.Spacing, cfgErr.Category)
}

func TestPluginSpec_MissingName(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/utilicss.yaml", "plugins:\n  - when: production\n", 0644)

	_, err := Load(mfs, "/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestRegistry_Layers(t *testing.T) {
	mfs := testutil.Files(map[string]string{
		"presets/brand.yaml": `
maxWidth:
  narrow: 10rem
extend:
  spacing:
    "13": 3rem
    "15": 3.75rem
`,
		".config/utilicss.yaml": `
presets:
  - presets/brand.yaml
theme:
  extend:
    spacing:
      "13": 3.25rem
`,
	})

	cfg, err := Load(mfs, testutil.Root)
	require.NoError(t, err)

	reg, err := cfg.Registry(mfs, testutil.Root)
	require.NoError(t, err)

	// preset override replaced the base maxWidth scale
	_, ok := reg.Lookup(token.MaxWidth, "prose")
	assert.False(t, ok)
	v, _ := reg.Lookup(token.MaxWidth, "narrow")
	assert.Equal(t, "10rem", v)

	// project extension wins over the preset's
	v, _ = reg.Lookup(token.Spacing, "13")
	assert.Equal(t, "3.25rem", v)
	v, _ = reg.Lookup(token.Spacing, "15")
	assert.Equal(t, "3.75rem", v)

	// base scale survives
	v, _ = reg.Lookup(token.Spacing, "4")
	assert.Equal(t, "1rem", v)
}

func TestRegistry_MissingPreset(t *testing.T) {
	cfg := &Config{Presets: []string{"missing.yaml"}}
	_, err := cfg.Registry(mapfs.New(), "/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset missing.yaml")
}

func TestExpandContent(t *testing.T) {
	mfs := testutil.Files(map[string]string{
		"index.html":             "",
		"about.html":             "",
		"src/main.rs":            "",
		"src/board/view.rs":      "",
		"src/board/view_test.rs": "",
		"src/notes.txt":          "",
	})

	cfg := &Config{Content: Content{Files: []string{
		"*.html",
		"./src/**/*.rs",
		"index.html",
		"!src/**/*_test.rs",
		"docs/**/*.md",
	}}}

	files, empty, err := cfg.ExpandContent(mfs, testutil.Root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/project/about.html",
		"/project/index.html",
		"/project/src/board/view.rs",
		"/project/src/main.rs",
	}, files)
	assert.Equal(t, []string{"docs/**/*.md"}, empty)
}

func TestExpandContent_LiteralMissing(t *testing.T) {
	cfg := &Config{Content: Content{Files: []string{"index.html"}}}
	files, empty, err := cfg.ExpandContent(mapfs.New(), "/project")
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, []string{"index.html"}, empty)
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/elsewhere/build.yml", "input: app.css\n", 0644)
	mfs.AddFile("/project/.config/utilicss.yaml", "input: ignored.css\n", 0644)

	cfg, err := LoadFrom(mfs, "/project", "/elsewhere/build.yml")
	require.NoError(t, err)
	assert.Equal(t, "app.css", cfg.Input)

	cfg, err = LoadFrom(mfs, "/project", "")
	require.NoError(t, err)
	assert.Equal(t, "ignored.css", cfg.Input)

	_, err = LoadFrom(mfs, "/project", "/missing.yaml")
	require.Error(t, err)
}
