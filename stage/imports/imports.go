/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package imports inlines local @import rules.
package imports

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"bennypowers.dev/utilicss/css"
	ucfs "bennypowers.dev/utilicss/fs"
)

// Name is the stage name.
const Name = "import"

var (
	// ErrCycle is returned when a file imports itself, directly or not.
	ErrCycle = errors.New("import cycle")
	// ErrMalformed is returned for an @import without a quoted path or url().
	ErrMalformed = errors.New("malformed @import")
)

// Stage replaces top-level @import rules with the imported stylesheet.
// Paths resolve relative to the importing file. Remote URLs are left alone.
type Stage struct {
	fs   ucfs.Reader
	file string
	log  *zap.Logger
}

// New creates an import stage for the stylesheet at file.
func New(filesystem ucfs.Reader, file string, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{fs: filesystem, file: file, log: log.Named(Name)}
}

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return Name }

// Transform implements pipeline.Stage.
func (s *Stage) Transform(ctx context.Context, src []byte) ([]byte, error) {
	sheet, err := css.ParseFile(s.file, src)
	if err != nil {
		return nil, err
	}
	nodes, err := s.inline(ctx, sheet.Nodes, s.file, []string{filepath.Clean(s.file)})
	if err != nil {
		return nil, err
	}
	return (&css.Stylesheet{Nodes: nodes}).Bytes(), nil
}

func (s *Stage) inline(ctx context.Context, nodes []css.Node, file string, stack []string) ([]css.Node, error) {
	var out []css.Node
	for _, n := range nodes {
		at, ok := n.(*css.AtRule)
		if !ok || at.Name != "import" || at.Block {
			out = append(out, n)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target, media, err := ParseParams(at.Params)
		if err != nil {
			return nil, css.Errorf(at.Position, "%v", err)
		}
		if IsRemote(target) {
			out = append(out, n)
			continue
		}

		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(file), path)
		}
		path = filepath.Clean(path)
		if slices.Contains(stack, path) {
			chain := strings.Join(append(slices.Clone(stack), path), " -> ")
			return nil, css.Errorf(at.Position, "%v: %s", ErrCycle, chain)
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return nil, css.Errorf(at.Position, "cannot import %q: %v", target, err)
		}
		sheet, err := css.ParseFile(path, data)
		if err != nil {
			return nil, err
		}
		s.log.Debug("Inlining", zap.String("from", file), zap.String("file", path))

		children, err := s.inline(ctx, sheet.Nodes, path, append(slices.Clone(stack), path))
		if err != nil {
			return nil, err
		}
		if media != "" {
			out = append(out, &css.AtRule{Name: "media", Params: media, Block: true, Nodes: children, Position: at.Position})
			continue
		}
		out = append(out, children...)
	}
	return out, nil
}

// ParseParams splits @import parameters into the target and the media query.
//
//	"a.css"            → a.css, ""
//	url(a.css) print   → a.css, print
func ParseParams(params string) (target, media string, err error) {
	p := strings.TrimSpace(params)
	var rest string
	switch {
	case strings.HasPrefix(strings.ToLower(p), "url("):
		end := strings.IndexByte(p, ')')
		if end < 0 {
			return "", "", fmt.Errorf("%w: unclosed url(", ErrMalformed)
		}
		target = strings.Trim(strings.TrimSpace(p[4:end]), `"'`)
		rest = p[end+1:]
	case p != "" && (p[0] == '"' || p[0] == '\''):
		end := strings.IndexByte(p[1:], p[0])
		if end < 0 {
			return "", "", fmt.Errorf("%w: unterminated string", ErrMalformed)
		}
		target = p[1 : end+1]
		rest = p[end+2:]
	default:
		return "", "", fmt.Errorf("%w: expected a quoted path or url(), got %q", ErrMalformed, p)
	}
	if target == "" {
		return "", "", fmt.Errorf("%w: empty path", ErrMalformed)
	}
	return target, strings.TrimSpace(rest), nil
}

// IsRemote reports whether target is fetched by the browser rather than inlined.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, "//") || strings.Contains(target, "://") || strings.HasPrefix(target, "data:")
}
