/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css provides the stylesheet model shared by the build stages:
// a nesting-aware parser, an AST, a printer and selector helpers.
package css

import "fmt"

// Position locates a node in its source.
type Position struct {
	// File is the source name, empty for anonymous input.
	File string
	// Line is the 1-based line number.
	Line int
	// Column is the 1-based column in bytes.
	Column int
}

// String formats the position as file:line:col.
func (p Position) String() string {
	switch {
	case p.Line == 0:
		return p.File
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// IsValid reports whether the position carries a line.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Node is a stylesheet item: *Rule, *AtRule or *Declaration.
type Node interface {
	Pos() Position
	node()
}

func (*Rule) node()        {}
func (*AtRule) node()      {}
func (*Declaration) node() {}

// Stylesheet is a parsed CSS source.
type Stylesheet struct {
	Nodes []Node
}

// Rule is a qualified rule: a selector and a block.
// Nodes may hold nested rules before the nesting stage flattens them.
type Rule struct {
	Selector string
	Nodes    []Node
	Position Position
}

// Pos implements Node.
func (r *Rule) Pos() Position { return r.Position }

// AtRule is an @-rule, with or without a block.
type AtRule struct {
	// Name is the keyword without "@" (e.g., "media").
	Name string
	// Params is the prelude text after the name.
	Params string
	// Block is true when the rule has a {}-block (possibly empty).
	Block    bool
	Nodes    []Node
	Position Position
}

// Pos implements Node.
func (a *AtRule) Pos() Position { return a.Position }

// Declaration is a property/value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
	Position  Position
}

// Pos implements Node.
func (d *Declaration) Pos() Position { return d.Position }

// Declarations returns the declarations directly inside nodes.
func Declarations(nodes []Node) []*Declaration {
	var decls []*Declaration
	for _, n := range nodes {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Clone returns a deep copy of nodes.
func Clone(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		switch n := n.(type) {
		case *Rule:
			c := *n
			c.Nodes = Clone(n.Nodes)
			out[i] = &c
		case *AtRule:
			c := *n
			c.Nodes = Clone(n.Nodes)
			out[i] = &c
		case *Declaration:
			c := *n
			out[i] = &c
		}
	}
	return out
}

// Walk calls fn for every node, depth first, parents before children.
// Returning false skips the node's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch n := n.(type) {
		case *Rule:
			Walk(n.Nodes, fn)
		case *AtRule:
			Walk(n.Nodes, fn)
		}
	}
}
