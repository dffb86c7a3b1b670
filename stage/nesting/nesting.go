/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package nesting flattens nested style rules into plain CSS.
package nesting

import (
	"context"
	"strings"

	"bennypowers.dev/utilicss/css"
)

// Name is the stage name.
const Name = "nesting"

// bubbling at-rules are hoisted out of style rules, wrapping a copy of the
// parent selector.
var bubbling = map[string]bool{
	"media":     true,
	"supports":  true,
	"container": true,
	"layer":     true,
}

// unwrapped at-rules are moved to the top level as they are, without the
// parent selector. Other at-rules nested in a rule stay where they are.
var unwrapped = map[string]bool{
	"document":          true,
	"font-face":         true,
	"keyframes":         true,
	"-webkit-keyframes": true,
	"-moz-keyframes":    true,
}

func isKeyframes(name string) bool {
	return strings.HasSuffix(name, "keyframes")
}

// Stage desugars nested rules: "&" is replaced by the parent selector and a
// child selector without "&" becomes a descendant of it.
type Stage struct{}

// New creates a nesting stage.
func New() *Stage { return &Stage{} }

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return Name }

// Transform implements pipeline.Stage.
func (s *Stage) Transform(_ context.Context, src []byte) ([]byte, error) {
	sheet, err := css.Parse(src)
	if err != nil {
		return nil, err
	}
	nodes, err := topLevel(sheet.Nodes)
	if err != nil {
		return nil, err
	}
	return (&css.Stylesheet{Nodes: nodes}).Bytes(), nil
}

// Flatten returns nodes with every nested rule hoisted to the top level.
func Flatten(nodes []css.Node) ([]css.Node, error) {
	return topLevel(nodes)
}

func topLevel(nodes []css.Node) ([]css.Node, error) {
	var out []css.Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *css.Rule:
			if css.HasNesting(n.Selector) {
				return nil, css.Errorf(n.Position, "nesting selector '&' in %q has no parent rule", n.Selector)
			}
			flat, err := rule(n, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
		case *css.AtRule:
			if n.Block && !isKeyframes(n.Name) {
				children, err := topLevel(n.Nodes)
				if err != nil {
					return nil, err
				}
				n.Nodes = children
			}
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

// rule flattens r under the given parent selectors. Declarations interleaved
// with nested rules are split into separate rules to keep source order.
func rule(r *css.Rule, parents []string) ([]css.Node, error) {
	selectors := Resolve(parents, r.Selector)
	selector := strings.Join(selectors, ", ")

	var out []css.Node
	current := &css.Rule{Selector: selector, Position: r.Position}
	flush := func() {
		if len(current.Nodes) > 0 {
			out = append(out, current)
			current = &css.Rule{Selector: selector, Position: r.Position}
		}
	}

	for _, child := range r.Nodes {
		switch c := child.(type) {
		case *css.Rule:
			flush()
			nested, err := rule(c, selectors)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		case *css.AtRule:
			if c.Block && unwrapped[c.Name] {
				flush()
				hoisted, err := topLevel([]css.Node{c})
				if err != nil {
					return nil, err
				}
				out = append(out, hoisted...)
				continue
			}
			if !c.Block || !bubbling[c.Name] {
				current.Nodes = append(current.Nodes, c)
				continue
			}
			flush()
			hoisted, err := bubble(c, selectors)
			if err != nil {
				return nil, err
			}
			out = append(out, hoisted...)
		default:
			current.Nodes = append(current.Nodes, c)
		}
	}
	flush()
	return out, nil
}

// bubble hoists a nested at-rule, flattening its body under parents.
// Directly nested @media rules merge their queries with "and".
func bubble(at *css.AtRule, parents []string) ([]css.Node, error) {
	body, err := rule(&css.Rule{Selector: "&", Nodes: at.Nodes, Position: at.Position}, parents)
	if err != nil {
		return nil, err
	}

	var out []css.Node
	var current *css.AtRule
	for _, n := range body {
		if inner, ok := n.(*css.AtRule); ok && at.Name == "media" && inner.Name == "media" {
			current = nil
			merged := *inner
			merged.Params = at.Params + " and " + inner.Params
			out = append(out, &merged)
			continue
		}
		if current == nil {
			current = &css.AtRule{Name: at.Name, Params: at.Params, Block: true, Position: at.Position}
			out = append(out, current)
		}
		current.Nodes = append(current.Nodes, n)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Resolve combines parent and child selector lists. Each child containing
// "&" has it replaced by the parent; other children become descendants.
// With no parents the child list is returned as is.
func Resolve(parents []string, child string) []string {
	children := css.SplitList(child)
	if len(parents) == 0 {
		return children
	}
	var result []string
	for _, p := range parents {
		for _, c := range children {
			if css.HasNesting(c) {
				result = append(result, css.ReplaceNesting(c, p))
				continue
			}
			result = append(result, p+" "+c)
		}
	}
	return result
}
