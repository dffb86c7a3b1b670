/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package utility

import "bennypowers.dev/utilicss/token"

// valueKind constrains which arbitrary values (e.g., "max-w-[10px]") a rule accepts.
type valueKind int

const (
	kindNone valueKind = iota
	kindLength
	kindColor
	kindAny
)

// Rule maps a class prefix to the token categories it reads and the
// properties it sets. "max-w" matches "max-w-<key>".
type Rule struct {
	Prefix     string
	Categories []token.Category
	Properties []string
	kind       valueKind
}

func spacing(prefix string, props ...string) Rule {
	return Rule{Prefix: prefix, Categories: []token.Category{token.Spacing}, Properties: props, kind: kindLength}
}

// Rules is the fixed rule table, in output order.
var Rules = []Rule{
	{Prefix: "animate", Categories: []token.Category{token.Animation}, Properties: []string{"animation"}, kind: kindAny},
	{Prefix: "bg", Categories: []token.Category{token.BackgroundPosition}, Properties: []string{"background-position"}},
	{Prefix: "bg", Categories: []token.Category{token.BackgroundSize}, Properties: []string{"background-size"}},
	{Prefix: "bg", Categories: []token.Category{token.Colors}, Properties: []string{"background-color"}, kind: kindColor},
	{Prefix: "text", Categories: []token.Category{token.Colors}, Properties: []string{"color"}, kind: kindColor},
	{Prefix: "border", Categories: []token.Category{token.Colors}, Properties: []string{"border-color"}, kind: kindColor},
	{Prefix: "max-w", Categories: []token.Category{token.MaxWidth}, Properties: []string{"max-width"}, kind: kindLength},
	{Prefix: "max-h", Categories: []token.Category{token.MaxHeight, token.Spacing}, Properties: []string{"max-height"}, kind: kindLength},
	{Prefix: "min-h", Categories: []token.Category{token.MinHeight}, Properties: []string{"min-height"}, kind: kindLength},
	{Prefix: "w", Categories: []token.Category{token.Width, token.Spacing}, Properties: []string{"width"}, kind: kindLength},
	{Prefix: "h", Categories: []token.Category{token.Height, token.Spacing}, Properties: []string{"height"}, kind: kindLength},
	spacing("inset", "inset"),
	spacing("top", "top"),
	spacing("right", "right"),
	spacing("bottom", "bottom"),
	spacing("left", "left"),
	spacing("m", "margin"),
	spacing("mx", "margin-left", "margin-right"),
	spacing("my", "margin-top", "margin-bottom"),
	spacing("mt", "margin-top"),
	spacing("mr", "margin-right"),
	spacing("mb", "margin-bottom"),
	spacing("ml", "margin-left"),
	spacing("p", "padding"),
	spacing("px", "padding-left", "padding-right"),
	spacing("py", "padding-top", "padding-bottom"),
	spacing("pt", "padding-top"),
	spacing("pr", "padding-right"),
	spacing("pb", "padding-bottom"),
	spacing("pl", "padding-left"),
	spacing("gap", "gap"),
	spacing("gap-x", "column-gap"),
	spacing("gap-y", "row-gap"),
}

// Prefixes returns the distinct rule prefixes, in rule order.
func Prefixes() []string {
	seen := make(map[string]bool)
	var result []string
	for _, r := range Rules {
		if !seen[r.Prefix] {
			seen[r.Prefix] = true
			result = append(result, r.Prefix)
		}
	}
	return result
}

type pseudoVariant struct {
	name   string
	suffix string
}

var pseudoVariants = []pseudoVariant{
	{"first", ":first-child"},
	{"last", ":last-child"},
	{"odd", ":nth-child(odd)"},
	{"even", ":nth-child(even)"},
	{"visited", ":visited"},
	{"hover", ":hover"},
	{"focus", ":focus"},
	{"focus-within", ":focus-within"},
	{"focus-visible", ":focus-visible"},
	{"active", ":active"},
	{"disabled", ":disabled"},
}

type mediaVariant struct {
	name  string
	query string
}

var mediaVariants = []mediaVariant{
	{"motion-safe", "(prefers-reduced-motion: no-preference)"},
	{"motion-reduce", "(prefers-reduced-motion: reduce)"},
	{"dark", "(prefers-color-scheme: dark)"},
	{"print", "print"},
}
