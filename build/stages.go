/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package build

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"bennypowers.dev/utilicss/config"
	ucfs "bennypowers.dev/utilicss/fs"
	"bennypowers.dev/utilicss/pipeline"
	"bennypowers.dev/utilicss/stage/atvars"
	"bennypowers.dev/utilicss/stage/imports"
	"bennypowers.dev/utilicss/stage/macro"
	"bennypowers.dev/utilicss/stage/minify"
	"bennypowers.dev/utilicss/stage/nesting"
	"bennypowers.dev/utilicss/stage/utilities"
	"bennypowers.dev/utilicss/utility"
)

// ErrUnknownPlugin is returned for a plugin name with no matching stage.
var ErrUnknownPlugin = errors.New("unknown plugin")

// DefaultPlugins is the stage order used when the config lists no plugins.
var DefaultPlugins = []config.PluginSpec{
	{Name: imports.Name},
	{Name: atvars.Name},
	{Name: macro.EachName},
	{Name: macro.ForName},
	{Name: nesting.Name},
	{Name: utilities.Name},
	{Name: minify.Name, When: "production"},
}

// aliases maps PostCSS plugin names to stage names.
var aliases = map[string]string{
	"postcss-import":             imports.Name,
	"postcss-at-rules-variables": atvars.Name,
	"postcss-each":               macro.EachName,
	"postcss-for":                macro.ForName,
	"tailwindcss/nesting":        nesting.Name,
	"postcss-nesting":            nesting.Name,
	"postcss-nested":             nesting.Name,
	"tailwindcss":                utilities.Name,
	"cssnano":                    minify.Name,
}

// StageName returns the canonical stage name for a plugin name or alias.
func StageName(plugin string) string {
	if name, ok := aliases[plugin]; ok {
		return name
	}
	return plugin
}

// KnownPlugin reports whether plugin names a stage, directly or by alias.
func KnownPlugin(plugin string) bool {
	for _, spec := range DefaultPlugins {
		if spec.Name == StageName(plugin) {
			return true
		}
	}
	return false
}

// StageEnv is what stage constructors draw on.
type StageEnv struct {
	FS          ucfs.Reader
	Input       string
	Generator   *utility.Generator
	Identifiers []string
	Production  bool
	Logger      *zap.Logger
}

// NewPipeline constructs the pipeline for plugins, or DefaultPlugins when
// plugins is empty. Environment-gated stages are decided here, once.
func NewPipeline(env StageEnv, plugins []config.PluginSpec) (*pipeline.Pipeline, error) {
	log := env.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(plugins) == 0 {
		plugins = DefaultPlugins
	}

	var stages []pipeline.Stage
	for _, spec := range plugins {
		name := StageName(spec.Name)
		if spec.When == "" && name == minify.Name {
			spec.When = "production"
		}
		if !spec.Enabled(env.Production) {
			log.Debug("Skipping stage", zap.String("stage", name), zap.String("when", spec.When))
			continue
		}
		stage, err := newStage(name, spec, env, log)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return pipeline.New(log, stages...), nil
}

func newStage(name string, spec config.PluginSpec, env StageEnv, log *zap.Logger) (pipeline.Stage, error) {
	switch name {
	case imports.Name:
		return imports.New(env.FS, env.Input, log), nil
	case atvars.Name:
		return atvars.New(), nil
	case macro.EachName:
		return macro.NewEach(), nil
	case macro.ForName:
		return macro.NewFor(), nil
	case nesting.Name:
		return nesting.New(), nil
	case utilities.Name:
		if env.Generator == nil {
			return nil, fmt.Errorf("plugin %q: no utility generator", spec.Name)
		}
		return utilities.New(env.Generator, env.Identifiers, log), nil
	case minify.Name:
		precision := 0
		if v, ok := spec.Options["precision"]; ok {
			p, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("plugin %q: precision: %w", spec.Name, err)
			}
			precision = p
		}
		return minify.New(precision), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, spec.Name)
}
