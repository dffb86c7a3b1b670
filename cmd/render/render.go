/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/utilicss/token"
)

// Row holds computed display values for a single token.
type Row struct {
	Name     string `json:"name"`     // CSS variable name (e.g., "--max-width-32")
	Category string `json:"category"` // Token category
	Key      string `json:"key"`      // Key within the category
	Value    string `json:"value"`    // CSS value
	IsColor  bool   `json:"-"`        // Whether the value is a parseable color
}

// ComputeRows transforms tokens into display rows.
// A non-empty category filter keeps only that category.
func ComputeRows(tokens []*token.Token, category string) []Row {
	rows := make([]Row, 0, len(tokens))
	for _, tok := range tokens {
		if category != "" && string(tok.Category) != category {
			continue
		}
		row := Row{
			Name:     tok.CSSVariableName(),
			Category: string(tok.Category),
			Key:      tok.Key,
			Value:    tok.Value,
		}
		if tok.Category == token.Colors {
			if _, err := csscolorparser.Parse(row.Value); err == nil {
				row.IsColor = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ColumnWidths calculates the max width needed for each column.
func ColumnWidths(rows []Row) (name, category, val int) {
	name, category, val = 4, 8, 5 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		category = max(category, len(r.Category))
		val = max(val, len(r.Value))
	}
	return
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

// Table renders rows as an aligned table. Colors get a swatch when swatches is set.
func Table(w io.Writer, rows []Row, swatches bool) error {
	if len(rows) == 0 {
		return nil
	}
	nameW, catW, _ := ColumnWidths(rows)
	for _, r := range rows {
		swatch := ""
		if r.IsColor && swatches {
			swatch = ColorSwatch(r.Value)
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s%s\n", nameW, r.Name, catW, r.Category, swatch, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as markdown tables grouped by category.
func Markdown(w io.Writer, rows []Row) error {
	// Group rows by category, preserving order of first occurrence
	var order []string
	byCategory := make(map[string][]Row)
	for _, r := range rows {
		if _, exists := byCategory[r.Category]; !exists {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	var sb strings.Builder
	for i, cat := range order {
		group := byCategory[cat]
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "## %s\n\n", Heading(cat))

		keyW, valW := 3, 5
		for _, r := range group {
			keyW = max(keyW, len(r.Key))
			valW = max(valW, len(r.Value))
		}
		fmt.Fprintf(&sb, "| %-*s | %-*s |\n", keyW, "Key", valW, "Value")
		fmt.Fprintf(&sb, "|-%s-|-%s-|\n", strings.Repeat("-", keyW), strings.Repeat("-", valW))
		for _, r := range group {
			fmt.Fprintf(&sb, "| %-*s | %-*s |\n", keyW, r.Key, valW, r.Value)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// CSS renders rows as CSS custom properties.
func CSS(w io.Writer, rows []Row) error {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "  %s: %s;\n", r.Name, r.Value)
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// JSON renders rows as an indented JSON array.
func JSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Heading turns a camelCase category into a title, e.g. "maxWidth" → "Max Width".
func Heading(category string) string {
	words := strings.ReplaceAll(token.Kebab(category), "-", " ")
	return cases.Title(language.English).String(words)
}
