/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides design token tables, theme layering and validation.
package token

import (
	"strings"
	"unicode"
)

// Category names a token table in a theme (e.g., "spacing", "maxWidth").
type Category string

const (
	Spacing            Category = "spacing"
	MaxWidth           Category = "maxWidth"
	MaxHeight          Category = "maxHeight"
	MinHeight          Category = "minHeight"
	BackgroundPosition Category = "backgroundPosition"
	BackgroundSize     Category = "backgroundSize"
	Keyframes          Category = "keyframes"
	Animation          Category = "animation"
	Width              Category = "width"
	Height             Category = "height"
	Colors             Category = "colors"
	Screens            Category = "screens"
)

// KnownCategories lists the categories utilities are generated from.
var KnownCategories = []Category{
	Spacing,
	MaxWidth,
	MaxHeight,
	MinHeight,
	BackgroundPosition,
	BackgroundSize,
	Keyframes,
	Animation,
	Width,
	Height,
	Colors,
	Screens,
}

// Known reports whether c is one of KnownCategories.
// Other categories are carried through the registry opaquely.
func (c Category) Known() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Kebab returns the category name in kebab-case (e.g., "max-width").
func (c Category) Kebab() string {
	return Kebab(string(c))
}

// Token is a single resolved entry of a table, used for listing.
type Token struct {
	// Category is the table the token belongs to.
	Category Category `json:"category"`

	// Key is the token key within its category (e.g., "51.25").
	Key string `json:"key"`

	// Value is the CSS value (e.g., "12.8125rem").
	Value string `json:"value"`
}

// CSSVariableName returns a CSS custom property name for this token.
// e.g., "--spacing-51_25" or "--max-width-32"
func (t *Token) CSSVariableName() string {
	key := strings.ReplaceAll(t.Key, ".", "_")
	key = strings.ReplaceAll(key, "/", "-")
	return "--" + t.Category.Kebab() + "-" + key
}

// Kebab converts a camelCase identifier to kebab-case.
// Already-kebab input is returned unchanged.
func Kebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
