/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/config"
	"bennypowers.dev/utilicss/internal/mapfs"
	"bennypowers.dev/utilicss/pipeline"
	"bennypowers.dev/utilicss/testutil"
	"bennypowers.dev/utilicss/token"
	"bennypowers.dev/utilicss/utility"
)

func loadProject(t *testing.T, fixture string) (*mapfs.MapFileSystem, *config.Config) {
	t.Helper()
	mfs := testutil.Project(t, fixture)
	cfg, err := config.Load(mfs, testutil.Root)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return mfs, cfg
}

func run(t *testing.T, mfs *mapfs.MapFileSystem, cfg *config.Config, production bool) (*build.Result, error) {
	t.Helper()
	return build.Build(context.Background(), build.Options{
		FS:         mfs,
		Root:       testutil.Root,
		Config:     cfg,
		Production: production,
	})
}

func TestBuild_Golden(t *testing.T) {
	mfs, cfg := loadProject(t, "small")

	res, err := run(t, mfs, cfg, false)
	require.NoError(t, err)

	testutil.Golden(t, "small.css", res.CSS)
	assert.Equal(t, []string{"/project/index.html"}, res.Files)
}

func TestBuild_Project(t *testing.T) {
	mfs, cfg := loadProject(t, "project")

	res, err := run(t, mfs, cfg, false)
	require.NoError(t, err)
	out := string(res.CSS)

	// macros from the imported file
	assert.Contains(t, out, ".piece-knight {\n  background-image: url(\"pieces/knight.svg\");\n  order: 1;\n}")
	assert.Contains(t, out, ".rank-3 {\n  grid-row: 3;\n}")

	// nesting, at-rule variables and @apply
	assert.Contains(t, out, ".board .square {\n  padding: 0.25rem;\n  max-width: 40rem;\n}")
	assert.Contains(t, out, "@media (min-width: 40rem) {\n  .board {\n    gap: 0.5rem;\n  }\n}")
	assert.NotContains(t, out, "@tailwind")
	assert.NotContains(t, out, "@apply")

	// generated utilities
	assert.Contains(t, out, ".max-w-32 {\n  max-width: 32rem;\n}")
	assert.Contains(t, out, ".min-h-15 {\n  min-height: 3.75rem;\n}")
	assert.Contains(t, out, ".max-h-90 {\n  max-height: 22.5rem;\n}")
	assert.Contains(t, out, ".bg-piece {\n  background-position: center 90%;\n}")
	assert.Contains(t, out, ".bg-90 {\n  background-size: 90%;\n}")
	assert.Contains(t, out, ".gap-x-1\\.5 {\n  column-gap: 0.375rem;\n}")
	assert.Contains(t, out, ".hover\\:bg-neutral-900\\/30:hover {\n  background-color: rgb(23 23 23 / 0.3);\n}")
	assert.Contains(t, out, "@keyframes pulse-brightness {")
	assert.Contains(t, out, "@keyframes notify-show {")
	assert.Contains(t, out, "@media (min-width: 768px) {\n  .md\\:p-8 {\n    padding: 2rem;\n  }\n}")

	// pruning: only referenced tokens are emitted
	assert.NotContains(t, out, ".max-w-40")
	assert.NotContains(t, out, ".max-w-37")
	assert.NotContains(t, out, "max-w-999")
	assert.NotContains(t, out, "@keyframes spin")
	assert.Contains(t, res.Identifiers, "max-w-999")
}

func TestBuild_ProductionIsSmaller(t *testing.T) {
	mfs, cfg := loadProject(t, "project")

	dev, err := run(t, mfs, cfg, false)
	require.NoError(t, err)
	prod, err := run(t, mfs, cfg, true)
	require.NoError(t, err)

	assert.Less(t, len(prod.CSS), len(dev.CSS))
	assert.NotContains(t, dev.Stages, "minify")
	assert.Equal(t, "minify", prod.Stages[len(prod.Stages)-1])
	assert.Contains(t, string(prod.CSS), ".max-w-32{max-width:32rem}")
}

func TestBuild_ScanIsIdempotent(t *testing.T) {
	mfs, cfg := loadProject(t, "project")

	first, err := run(t, mfs, cfg, false)
	require.NoError(t, err)
	second, err := run(t, mfs, cfg, false)
	require.NoError(t, err)

	assert.Equal(t, first.Identifiers, second.Identifiers)
	assert.Equal(t, string(first.CSS), string(second.CSS))
}

func TestBuild_NoInputDefaultsToUtilities(t *testing.T) {
	mfs := testutil.Files(map[string]string{"index.html": `<p class="m-1">`})
	cfg := &config.Config{Content: config.Content{Files: []string{"*.html", "missing/**"}}}

	core, logs := observer.New(zapcore.WarnLevel)
	res, err := build.Build(context.Background(), build.Options{
		FS:     mfs,
		Root:   testutil.Root,
		Config: cfg,
		Logger: zap.New(core),
	})
	require.NoError(t, err)
	assert.Equal(t, ".m-1 {\n  margin: 0.25rem;\n}\n", string(res.CSS))

	warnings := logs.FilterMessage("Content pattern matched no files").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "missing/**", warnings[0].ContextMap()["pattern"])
}

func TestBuild_UndefinedKeyframes(t *testing.T) {
	mfs := testutil.Files(map[string]string{".config/utilicss.yaml": `
theme:
  extend:
    animation:
      pulse-brightness: pulse-brightness 2s ease-in-out infinite
      notify-show: notify-show 150ms ease-out
`})
	cfg, err := config.Load(mfs, testutil.Root)
	require.NoError(t, err)

	res, err := run(t, mfs, cfg, false)
	require.Error(t, err)
	assert.Nil(t, res)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, err, token.ErrUndefinedKeyframes)
	assert.Contains(t, err.Error(), `references undefined keyframes "pulse-brightness"`)
}

func TestBuild_AllOrNothing(t *testing.T) {
	mfs := testutil.Files(map[string]string{
		"main.css":   ".a {\n  @apply max-w-999;\n}\n@tailwind utilities;\n",
		"index.html": `<p class="p-4">`,
	})
	cfg := &config.Config{Input: "main.css", Content: config.Content{Files: []string{"index.html"}}}

	res, err := run(t, mfs, cfg, true)
	require.Error(t, err)
	assert.Nil(t, res)

	var serr *pipeline.StageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "utilities", serr.Stage)
	assert.Equal(t, "nesting", serr.After)
	assert.Equal(t, 2, serr.Pos.Line)
	assert.Contains(t, err.Error(), "in output of nesting")
}

func TestBuild_FirstStageErrorNamesInput(t *testing.T) {
	mfs := testutil.Files(map[string]string{"main.css": ".ok { x: 1; }\n&.bad { x: 1; }\n"})
	cfg := &config.Config{Input: "main.css", Plugins: []config.PluginSpec{{Name: "nesting"}}}

	_, err := run(t, mfs, cfg, false)
	var serr *pipeline.StageError
	require.ErrorAs(t, err, &serr)
	assert.Empty(t, serr.After)
	assert.Equal(t, "/project/main.css", serr.Pos.File)
	assert.Equal(t, 2, serr.Pos.Line)
	assert.Contains(t, err.Error(), "nesting: /project/main.css:2:1:")
}

func TestBuild_MissingInput(t *testing.T) {
	mfs := mapfs.New()
	cfg := &config.Config{Input: "missing.css"}

	_, err := run(t, mfs, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")
}

func TestNewPipeline_Aliases(t *testing.T) {
	plugins := []config.PluginSpec{
		{Name: "postcss-import"},
		{Name: "postcss-at-rules-variables"},
		{Name: "postcss-each"},
		{Name: "postcss-for"},
		{Name: "tailwindcss/nesting"},
		{Name: "tailwindcss"},
		{Name: "cssnano"},
	}
	env := build.StageEnv{FS: mapfs.New(), Generator: utility.NewGenerator(token.Load(token.DefaultTheme()))}

	dev, err := build.NewPipeline(env, plugins)
	require.NoError(t, err)
	assert.Equal(t, []string{"import", "atvars", "each", "for", "nesting", "utilities"}, dev.Stages())

	env.Production = true
	prod, err := build.NewPipeline(env, plugins)
	require.NoError(t, err)
	assert.Equal(t, []string{"import", "atvars", "each", "for", "nesting", "utilities", "minify"}, prod.Stages())

	_, err = build.NewPipeline(env, []config.PluginSpec{{Name: "autoprefixer"}})
	require.ErrorIs(t, err, build.ErrUnknownPlugin)

	assert.True(t, build.KnownPlugin("postcss-nested"))
	assert.True(t, build.KnownPlugin("minify"))
	assert.False(t, build.KnownPlugin("autoprefixer"))
}

func TestStageOrderMatters(t *testing.T) {
	src := []byte(".icon {\n  @each $n in a, b {\n    &-$(n) {\n      x: $(n);\n    }\n  }\n}\n")
	env := build.StageEnv{FS: mapfs.New()}

	eachFirst, err := build.NewPipeline(env, []config.PluginSpec{{Name: "each"}, {Name: "nesting"}})
	require.NoError(t, err)
	out, err := eachFirst.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, ".icon-a {\n  x: a;\n}\n.icon-b {\n  x: b;\n}\n", string(out))

	nestingFirst, err := build.NewPipeline(env, []config.PluginSpec{{Name: "nesting"}, {Name: "each"}})
	require.NoError(t, err)
	out, err = nestingFirst.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Contains(t, string(out), "&-a {")
	assert.NotContains(t, string(out), ".icon-a")
}

func TestIsProduction(t *testing.T) {
	assert.True(t, build.IsProduction("production"))
	assert.True(t, build.IsProduction(" Production "))
	assert.False(t, build.IsProduction("development"))
	assert.False(t, build.IsProduction(""))
}

func TestBuild_Cancelled(t *testing.T) {
	mfs, cfg := loadProject(t, "small")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := build.Build(ctx, build.Options{FS: mfs, Root: testutil.Root, Config: cfg})
	require.ErrorIs(t, err, context.Canceled)
}
