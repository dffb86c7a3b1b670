/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"io"
	"strings"
)

// Printer writes stylesheets in a normalized, indented form.
type Printer struct {
	// Indent is the per-level indentation. Defaults to two spaces.
	Indent string
}

// Print writes nodes to w.
func (p *Printer) Print(w io.Writer, nodes []Node) error {
	var sb strings.Builder
	p.nodes(&sb, nodes, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders the stylesheet with the default printer.
func (s *Stylesheet) String() string {
	return Format(s.Nodes)
}

// Bytes renders the stylesheet with the default printer.
func (s *Stylesheet) Bytes() []byte {
	return []byte(s.String())
}

// Format renders nodes with the default printer.
func Format(nodes []Node) string {
	var sb strings.Builder
	(&Printer{}).nodes(&sb, nodes, 0)
	return sb.String()
}

func (p *Printer) indent() string {
	if p.Indent == "" {
		return "  "
	}
	return p.Indent
}

func (p *Printer) nodes(sb *strings.Builder, nodes []Node, level int) {
	pad := strings.Repeat(p.indent(), level)
	for _, n := range nodes {
		switch n := n.(type) {
		case *Declaration:
			sb.WriteString(pad)
			sb.WriteString(n.Property)
			sb.WriteString(": ")
			sb.WriteString(n.Value)
			if n.Important {
				sb.WriteString(" !important")
			}
			sb.WriteString(";\n")

		case *Rule:
			sb.WriteString(pad)
			sb.WriteString(n.Selector)
			sb.WriteString(" {\n")
			p.nodes(sb, n.Nodes, level+1)
			sb.WriteString(pad)
			sb.WriteString("}\n")

		case *AtRule:
			sb.WriteString(pad)
			sb.WriteByte('@')
			sb.WriteString(n.Name)
			if n.Params != "" {
				sb.WriteByte(' ')
				sb.WriteString(n.Params)
			}
			if !n.Block {
				sb.WriteString(";\n")
				continue
			}
			sb.WriteString(" {\n")
			p.nodes(sb, n.Nodes, level+1)
			sb.WriteString(pad)
			sb.WriteString("}\n")
		}
	}
}
