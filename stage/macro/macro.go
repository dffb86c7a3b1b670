/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package macro expands the @each and @for loop at-rules.
package macro

import (
	"context"
	"strings"

	"bennypowers.dev/utilicss/css"
)

// expander turns one macro at-rule into the nodes that replace it.
type expander func(at *css.AtRule) ([]css.Node, error)

// stage expands every at-rule named name, at any depth.
type stage struct {
	name   string
	expand expander
}

func (s *stage) Name() string { return s.name }

func (s *stage) Transform(_ context.Context, src []byte) ([]byte, error) {
	sheet, err := css.Parse(src)
	if err != nil {
		return nil, err
	}
	nodes, err := s.nodes(sheet.Nodes)
	if err != nil {
		return nil, err
	}
	return (&css.Stylesheet{Nodes: nodes}).Bytes(), nil
}

func (s *stage) nodes(nodes []css.Node) ([]css.Node, error) {
	out := make([]css.Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *css.AtRule:
			if n.Name == s.name {
				expanded, err := s.expand(n)
				if err != nil {
					return nil, err
				}
				// the body may hold further loops, now with outer variables bound
				expanded, err = s.nodes(expanded)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				continue
			}
			children, err := s.nodes(n.Nodes)
			if err != nil {
				return nil, err
			}
			n.Nodes = children
		case *css.Rule:
			children, err := s.nodes(n.Nodes)
			if err != nil {
				return nil, err
			}
			n.Nodes = children
		}
		out = append(out, n)
	}
	return out, nil
}

// bind returns a deep copy of body with variables substituted everywhere
// text appears: selectors, at-rule params, property names and values.
func bind(body []css.Node, vars map[string]string) []css.Node {
	nodes := css.Clone(body)
	css.Walk(nodes, func(n css.Node) bool {
		switch n := n.(type) {
		case *css.Rule:
			n.Selector = Substitute(n.Selector, vars)
		case *css.AtRule:
			n.Params = Substitute(n.Params, vars)
		case *css.Declaration:
			n.Property = Substitute(n.Property, vars)
			n.Value = Substitute(n.Value, vars)
		}
		return true
	})
	return nodes
}

// Substitute replaces $(name) and $name with vars[name]. A bare $name only
// matches when not followed by a letter, digit or underscore.
func Substitute(s string, vars map[string]string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '$' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if v, n, ok := lookup(s[i+1:], vars); ok {
			sb.WriteString(v)
			i += 1 + n
			continue
		}
		sb.WriteByte('$')
		i++
	}
	return sb.String()
}

// lookup matches a variable reference at the start of s, returning its value
// and the number of bytes consumed.
func lookup(s string, vars map[string]string) (string, int, bool) {
	if strings.HasPrefix(s, "(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return "", 0, false
		}
		v, ok := vars[s[1:end]]
		return v, end + 1, ok
	}
	best := ""
	for name := range vars {
		if len(name) <= len(best) || !strings.HasPrefix(s, name) {
			continue
		}
		if len(s) > len(name) && isWordByte(s[len(name)]) {
			continue
		}
		best = name
	}
	if best == "" {
		return "", 0, false
	}
	return vars[best], len(best), true
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
