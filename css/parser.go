/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"bytes"
	"io"
	"regexp"
	"sort"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// lexeme is a single token with its byte offset in the source.
type lexeme struct {
	tt     tcss.TokenType
	text   string
	offset int
}

// Parse parses anonymous CSS source.
func Parse(src []byte) (*Stylesheet, error) {
	return ParseFile("", src)
}

// ParseFile parses CSS source, naming it in positions.
// Nested rules are kept nested; at-rule preludes and declaration values are
// kept as text. Comments are dropped.
func ParseFile(name string, src []byte) (*Stylesheet, error) {
	p := &parser{file: name, lines: lineStarts(src)}
	if err := p.lex(src); err != nil {
		return nil, err
	}
	nodes, err := p.parseNodes(false, Position{})
	if err != nil {
		return nil, err
	}
	return &Stylesheet{Nodes: nodes}, nil
}

type parser struct {
	file  string
	toks  []lexeme
	i     int
	lines []int
}

func (p *parser) lex(src []byte) error {
	l := tcss.NewLexer(parse.NewInput(bytes.NewReader(src)))
	offset := 0
	for {
		tt, data := l.Next()
		if tt == tcss.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return Errorf(p.pos(offset), "%v", err)
			}
			return nil
		}
		p.toks = append(p.toks, lexeme{tt: tt, text: string(data), offset: offset})
		offset += len(data)
	}
}

func (p *parser) pos(offset int) Position {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > offset })
	return Position{File: p.file, Line: line, Column: offset - p.lines[line-1] + 1}
}

// parseNodes consumes a list of rules and declarations. When nested it stops
// after the closing brace of the enclosing block.
func (p *parser) parseNodes(nested bool, open Position) ([]Node, error) {
	var nodes []Node
	var prelude []lexeme
	depth := 0

	for p.i < len(p.toks) {
		t := p.toks[p.i]
		p.i++

		switch t.tt {
		case tcss.CommentToken, tcss.CDOToken, tcss.CDCToken:
			continue
		case tcss.WhitespaceToken:
			if len(prelude) > 0 {
				prelude = append(prelude, t)
			}
			continue
		case tcss.BadStringToken:
			return nil, Errorf(p.pos(t.offset), "unterminated string")
		case tcss.BadURLToken:
			return nil, Errorf(p.pos(t.offset), "malformed url()")
		case tcss.LeftParenthesisToken, tcss.FunctionToken, tcss.LeftBracketToken:
			depth++
		case tcss.RightParenthesisToken, tcss.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case tcss.LeftBraceToken:
			if nested && customPropertyValue(prelude) {
				var err error
				if prelude, err = p.braceValue(prelude, t); err != nil {
					return nil, err
				}
				continue
			}
			if len(prelude) == 0 {
				return nil, Errorf(p.pos(t.offset), "unexpected '{' without a selector")
			}
			children, err := p.parseNodes(true, p.pos(t.offset))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, p.block(prelude, children))
			prelude = nil
			depth = 0
			continue
		case tcss.SemicolonToken:
			if depth > 0 {
				break
			}
			if len(prelude) > 0 {
				n, err := p.statement(prelude, nested)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
			}
			prelude = nil
			continue
		case tcss.RightBraceToken:
			if !nested {
				return nil, Errorf(p.pos(t.offset), "unexpected '}'")
			}
			if len(prelude) > 0 {
				n, err := p.statement(prelude, nested)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, n)
			}
			return nodes, nil
		}
		prelude = append(prelude, t)
	}

	if nested {
		return nil, Errorf(open, "unclosed block")
	}
	if len(prelude) > 0 {
		n, err := p.statement(prelude, nested)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) block(prelude []lexeme, children []Node) Node {
	pos := p.pos(prelude[0].offset)
	if prelude[0].tt == tcss.AtKeywordToken {
		return &AtRule{
			Name:     strings.TrimPrefix(prelude[0].text, "@"),
			Params:   joinText(prelude[1:]),
			Block:    true,
			Nodes:    children,
			Position: pos,
		}
	}
	return &Rule{Selector: joinText(prelude), Nodes: children, Position: pos}
}

// customPropertyValue reports whether prelude is "--name:" followed by a
// partial value. A block there belongs to the value, not to a nested rule.
func customPropertyValue(prelude []lexeme) bool {
	if len(prelude) < 2 || prelude[0].tt != tcss.CustomPropertyNameToken {
		return false
	}
	for _, t := range prelude[1:] {
		switch t.tt {
		case tcss.WhitespaceToken, tcss.CommentToken:
			continue
		case tcss.ColonToken:
			return true
		}
		return false
	}
	return false
}

// braceValue appends a balanced {}-block, starting at open, to prelude.
func (p *parser) braceValue(prelude []lexeme, open lexeme) ([]lexeme, error) {
	prelude = append(prelude, open)
	depth := 1
	for p.i < len(p.toks) {
		t := p.toks[p.i]
		p.i++
		prelude = append(prelude, t)
		switch t.tt {
		case tcss.LeftBraceToken:
			depth++
		case tcss.RightBraceToken:
			if depth--; depth == 0 {
				return prelude, nil
			}
		}
	}
	return nil, Errorf(p.pos(open.offset), "unclosed block")
}

var importantPattern = regexp.MustCompile(`(?i)\s*!\s*important$`)

// statement builds a block-less at-rule or a declaration.
func (p *parser) statement(prelude []lexeme, nested bool) (Node, error) {
	pos := p.pos(prelude[0].offset)
	if prelude[0].tt == tcss.AtKeywordToken {
		return &AtRule{
			Name:     strings.TrimPrefix(prelude[0].text, "@"),
			Params:   joinText(prelude[1:]),
			Position: pos,
		}, nil
	}

	if !nested {
		return nil, Errorf(pos, "unexpected %q outside of a rule", joinText(prelude))
	}

	colon := -1
	depth := 0
	for i, t := range prelude {
		switch t.tt {
		case tcss.LeftParenthesisToken, tcss.FunctionToken, tcss.LeftBracketToken:
			depth++
		case tcss.RightParenthesisToken, tcss.RightBracketToken:
			depth--
		case tcss.ColonToken:
			if depth == 0 && colon < 0 {
				colon = i
			}
		}
	}
	if colon < 0 {
		return nil, Errorf(pos, "invalid declaration %q: missing ':'", joinText(prelude))
	}

	prop := joinText(prelude[:colon])
	if prop == "" {
		return nil, Errorf(pos, "declaration without a property name")
	}
	value := joinText(prelude[colon+1:])
	important := false
	if loc := importantPattern.FindStringIndex(value); loc != nil {
		important = true
		value = strings.TrimSpace(value[:loc[0]])
	}
	return &Declaration{Property: prop, Value: value, Important: important, Position: pos}, nil
}

// joinText concatenates token text, collapsing whitespace runs to one space.
func joinText(toks []lexeme) string {
	var sb strings.Builder
	space := false
	for _, t := range toks {
		if t.tt == tcss.WhitespaceToken || t.tt == tcss.CommentToken {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(t.text)
	}
	return sb.String()
}

// lineStarts returns the byte offset of each line start.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
