/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package atvars substitutes :root custom properties into at-rule parameters,
// so that macros and media queries can be driven by CSS variables.
package atvars

import (
	"context"
	"strings"

	"bennypowers.dev/utilicss/css"
)

// Name is the stage name.
const Name = "atvars"

// maxDepth bounds variables that resolve to other variables.
const maxDepth = 16

// Stage replaces var(--x[, fallback]) in at-rule params.
type Stage struct{}

// New creates an at-rule variables stage.
func New() *Stage { return &Stage{} }

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return Name }

// Transform implements pipeline.Stage.
func (s *Stage) Transform(_ context.Context, src []byte) ([]byte, error) {
	sheet, err := css.Parse(src)
	if err != nil {
		return nil, err
	}
	vars := RootVariables(sheet.Nodes)
	css.Walk(sheet.Nodes, func(n css.Node) bool {
		if at, ok := n.(*css.AtRule); ok {
			at.Params = Replace(at.Params, vars)
		}
		return true
	})
	return sheet.Bytes(), nil
}

// RootVariables collects custom properties declared in top-level :root rules.
// Later declarations win.
func RootVariables(nodes []css.Node) map[string]string {
	vars := make(map[string]string)
	for _, n := range nodes {
		r, ok := n.(*css.Rule)
		if !ok || !isRoot(r.Selector) {
			continue
		}
		for _, d := range css.Declarations(r.Nodes) {
			if strings.HasPrefix(d.Property, "--") {
				vars[d.Property] = d.Value
			}
		}
	}
	return vars
}

func isRoot(selector string) bool {
	for _, s := range css.SplitList(selector) {
		if s == ":root" || s == "html" {
			return true
		}
	}
	return false
}

// Replace substitutes every resolvable var() reference in s.
// Unknown variables without a fallback are left untouched.
func Replace(s string, vars map[string]string) string {
	return replace(s, vars, 0)
}

func replace(s string, vars map[string]string, depth int) string {
	if depth > maxDepth {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.Index(s, "var(")
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		end := closingParen(s, i+3)
		if end < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		inner := s[i+4 : end]
		name, fallback, hasFallback := strings.Cut(inner, ",")
		name = strings.TrimSpace(name)
		switch v, ok := vars[name]; {
		case ok:
			sb.WriteString(replace(v, vars, depth+1))
		case hasFallback:
			sb.WriteString(replace(strings.TrimSpace(fallback), vars, depth+1))
		default:
			sb.WriteString(s[i : end+1])
		}
		s = s[end+1:]
	}
}

// closingParen returns the index of the parenthesis closing the one at open.
func closingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
