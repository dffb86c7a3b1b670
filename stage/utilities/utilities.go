/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package utilities injects generated utility rules and expands @apply.
package utilities

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bennypowers.dev/utilicss/css"
	"bennypowers.dev/utilicss/utility"
)

// Name is the stage name.
const Name = "utilities"

// Stage replaces "@tailwind utilities" with the rules generated for the
// scanned identifiers, or appends them when the directive is absent.
// "@tailwind base" and "@tailwind components" are removed.
type Stage struct {
	gen *utility.Generator
	ids []string
	log *zap.Logger
}

// New creates a utilities stage emitting rules for ids.
func New(gen *utility.Generator, ids []string, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{gen: gen, ids: ids, log: log.Named(Name)}
}

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return Name }

type state struct {
	// keyframes required by animations pulled in through @apply
	keyframes []string
	// marker stands in for "@tailwind utilities" until generated rules are spliced in
	marker *css.AtRule
}

// Transform implements pipeline.Stage.
func (s *Stage) Transform(_ context.Context, src []byte) ([]byte, error) {
	sheet, err := css.Parse(src)
	if err != nil {
		return nil, err
	}

	generated := s.gen.Generate(s.ids)
	st := &state{}
	nodes, err := s.nodes(sheet.Nodes, st, false)
	if err != nil {
		return nil, err
	}
	generated = s.withApplyKeyframes(generated, st.keyframes)

	if st.marker != nil {
		nodes = splice(nodes, st.marker, generated)
	} else {
		nodes = append(nodes, generated...)
	}
	s.log.Debug("Generated utilities",
		zap.Int("candidates", len(s.ids)),
		zap.Int("nodes", len(generated)))
	return (&css.Stylesheet{Nodes: nodes}).Bytes(), nil
}

func (s *Stage) nodes(nodes []css.Node, st *state, inRule bool) ([]css.Node, error) {
	out := make([]css.Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *css.AtRule:
			switch n.Name {
			case "tailwind":
				switch strings.TrimSpace(n.Params) {
				case "utilities":
					if st.marker == nil {
						st.marker = n
						out = append(out, n)
					}
				case "base", "components", "variants", "screens":
				default:
					return nil, css.Errorf(n.Position, "unknown @tailwind directive %q", n.Params)
				}
				continue
			case "apply":
				if !inRule {
					return nil, css.Errorf(n.Position, "@apply is only allowed inside a rule")
				}
				decls, err := s.apply(n, st)
				if err != nil {
					return nil, err
				}
				out = append(out, decls...)
				continue
			}
			children, err := s.nodes(n.Nodes, st, inRule)
			if err != nil {
				return nil, err
			}
			n.Nodes = children
		case *css.Rule:
			children, err := s.nodes(n.Nodes, st, true)
			if err != nil {
				return nil, err
			}
			n.Nodes = children
		}
		out = append(out, n)
	}
	return out, nil
}

// apply expands "@apply a b [!important]" into declarations.
func (s *Stage) apply(at *css.AtRule, st *state) ([]css.Node, error) {
	fields := strings.Fields(at.Params)
	important := false
	var classes []string
	for _, f := range fields {
		if f == "!important" {
			important = true
			continue
		}
		classes = append(classes, f)
	}
	if len(classes) == 0 {
		return nil, css.Errorf(at.Position, "@apply without classes")
	}

	var out []css.Node
	for _, class := range classes {
		imp := important
		if rest, ok := strings.CutPrefix(class, "!"); ok {
			class, imp = rest, true
		}
		u, ok := s.gen.Resolve(class)
		if !ok {
			return nil, css.Errorf(at.Position, "@apply: %v %q", utility.ErrUnknownUtility, class)
		}
		if len(u.Variants) > 0 {
			return nil, css.Errorf(at.Position, "@apply: %v: %q", utility.ErrVariantInApply, class)
		}
		for _, d := range u.Declarations {
			out = append(out, &css.Declaration{Property: d.Property, Value: d.Value, Important: imp, Position: at.Position})
		}
		st.keyframes = append(st.keyframes, u.Keyframes...)
	}
	return out, nil
}

// withApplyKeyframes prepends keyframes needed by @apply that the generated
// rules do not already include.
func (s *Stage) withApplyKeyframes(generated []css.Node, names []string) []css.Node {
	have := make(map[string]bool)
	for _, n := range generated {
		if at, ok := n.(*css.AtRule); ok && at.Name == "keyframes" {
			have[at.Params] = true
		}
	}
	var extra []css.Node
	for _, name := range names {
		if have[name] {
			continue
		}
		have[name] = true
		if kf, ok := s.gen.KeyframesNode(name); ok {
			extra = append(extra, kf)
		}
	}
	return append(extra, generated...)
}

// splice replaces marker, wherever it is nested, with generated.
func splice(nodes []css.Node, marker *css.AtRule, generated []css.Node) []css.Node {
	out := make([]css.Node, 0, len(nodes)+len(generated))
	for _, n := range nodes {
		if n == css.Node(marker) {
			out = append(out, generated...)
			continue
		}
		switch n := n.(type) {
		case *css.AtRule:
			n.Nodes = splice(n.Nodes, marker, generated)
		case *css.Rule:
			n.Nodes = splice(n.Nodes, marker, generated)
		}
		out = append(out, n)
	}
	return out
}
