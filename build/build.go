/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build runs a complete stylesheet build: it loads the theme,
// validates it, scans content, and runs the stage pipeline.
package build

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"bennypowers.dev/utilicss/config"
	ucfs "bennypowers.dev/utilicss/fs"
	"bennypowers.dev/utilicss/pipeline"
	"bennypowers.dev/utilicss/scan"
	"bennypowers.dev/utilicss/token"
	"bennypowers.dev/utilicss/utility"
)

// DefaultInput is the stylesheet used when the config names no input file.
const DefaultInput = "@tailwind utilities;\n"

// Options configures a build.
type Options struct {
	// FS is the filesystem to read from. Required.
	FS ucfs.Reader
	// Root is the project directory; relative paths resolve against it.
	Root string
	// Config is the loaded configuration. Nil means defaults.
	Config *config.Config
	// Production enables stages gated on the production environment.
	Production bool
	// Logger receives progress output. Nil discards it.
	Logger *zap.Logger
}

// Result is a finished build.
type Result struct {
	// CSS is the final stylesheet.
	CSS []byte
	// Identifiers are the scanned candidates, sorted.
	Identifiers []string
	// Files are the content files that were scanned.
	Files []string
	// Stages are the stage names that ran, in order.
	Stages []string
}

// Build runs one build. It returns either the complete stylesheet or an
// error; no partial output is produced.
func Build(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	reg, err := Registry(opts.FS, opts.Root, cfg)
	if err != nil {
		return nil, err
	}

	files, empty, err := cfg.ExpandContent(opts.FS, opts.Root)
	if err != nil {
		return nil, err
	}
	for _, pattern := range empty {
		log.Warn("Content pattern matched no files", zap.String("pattern", pattern))
	}

	set, err := scan.NewScanner(opts.FS, utility.Prefixes(), log).Scan(ctx, files)
	if err != nil {
		return nil, err
	}
	ids := set.Sorted()
	log.Debug("Scanned content", zap.Int("files", len(files)), zap.Int("candidates", len(ids)))

	input, src, err := readInput(opts.FS, opts.Root, cfg.Input)
	if err != nil {
		return nil, err
	}

	p, err := NewPipeline(StageEnv{
		FS:          opts.FS,
		Input:       input,
		Generator:   utility.NewGenerator(reg),
		Identifiers: ids,
		Production:  opts.Production,
		Logger:      log,
	}, cfg.Plugins)
	if err != nil {
		return nil, err
	}

	out, err := p.Run(ctx, src)
	if err != nil {
		var serr *pipeline.StageError
		if errors.As(err, &serr) && serr.After == "" && serr.Pos.IsValid() && serr.Pos.File == "" {
			// the first stage read the input file itself
			serr.Pos.File = input
		}
		return nil, err
	}

	return &Result{CSS: out, Identifiers: ids, Files: files, Stages: p.Stages()}, nil
}

// Registry builds and validates the token registry for cfg.
func Registry(filesystem ucfs.Reader, root string, cfg *config.Config) (*token.Registry, error) {
	reg, err := cfg.Registry(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func readInput(filesystem ucfs.Reader, root, input string) (string, []byte, error) {
	if input == "" {
		return filepath.Join(root, "input.css"), []byte(DefaultInput), nil
	}
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading input: %w", err)
	}
	return path, data, nil
}

// IsProduction reports whether an environment name selects production builds.
func IsProduction(env string) bool {
	return strings.EqualFold(strings.TrimSpace(env), "production")
}
