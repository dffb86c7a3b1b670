/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	tcss "github.com/tdewolff/parse/v2/css"
)

// nestingSelector is the delimiter that stands for the parent rule.
const nestingSelector = "&"

// HasNesting reports whether selector contains a nesting selector. An "&"
// inside a string or an escape is not one.
func HasNesting(selector string) bool {
	found := false
	eachToken(selector, func(tt tcss.TokenType, data []byte) {
		if tt == tcss.DelimToken && string(data) == nestingSelector {
			found = true
		}
	})
	return found
}

// ReplaceNesting replaces every nesting selector in selector with parent,
// leaving strings and escapes untouched.
func ReplaceNesting(selector, parent string) string {
	var sb strings.Builder
	eachToken(selector, func(tt tcss.TokenType, data []byte) {
		if tt == tcss.DelimToken && string(data) == nestingSelector {
			sb.WriteString(parent)
			return
		}
		sb.Write(data)
	})
	return sb.String()
}

// eachToken lexes s and calls fn for every token. The concatenated token
// data reproduces s.
func eachToken(s string, fn func(tcss.TokenType, []byte)) {
	l := tcss.NewLexer(parse.NewInputString(s))
	for {
		tt, data := l.Next()
		if tt == tcss.ErrorToken {
			return
		}
		fn(tt, data)
	}
}

// SplitList splits a comma-separated selector or value list, ignoring commas
// inside parentheses, brackets and quotes. Items are trimmed; empty items dropped.
func SplitList(s string) []string {
	var items []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '\\':
			i++
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			items = appendTrimmed(items, s[start:i])
			start = i + 1
		}
	}
	return appendTrimmed(items, s[start:])
}

func appendTrimmed(items []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		items = append(items, s)
	}
	return items
}

// EscapeClass escapes a class name for use after "." in a selector.
// e.g., "sm:max-w-51.25" → "sm\:max-w-51\.25"
func EscapeClass(class string) string {
	var sb strings.Builder
	for i, r := range class {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r >= 0x80:
			sb.WriteRune(r)
		case r == '-':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				// a leading digit must be written as a code point escape
				sb.WriteString(`\3`)
				sb.WriteRune(r)
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteString(`\ `)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ClassSelector returns ".<escaped class>".
func ClassSelector(class string) string {
	return "." + EscapeClass(class)
}
