/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package utility resolves utility class names against a token registry
// and generates the matching CSS rules.
package utility

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/utilicss/css"
	"bennypowers.dev/utilicss/token"
)

var (
	// ErrUnknownUtility is returned when a class does not resolve to any rule.
	ErrUnknownUtility = errors.New("unknown utility class")
	// ErrVariantInApply is returned when @apply names a class with variants.
	ErrVariantInApply = errors.New("variants are not supported in @apply")
)

// arbitraryIndex sorts arbitrary values after every theme token of a rule.
const arbitraryIndex = math.MaxInt32

// Utility is a resolved utility class.
type Utility struct {
	Class        string
	Variants     []string
	Rule         *Rule
	Key          string
	Value        string
	Declarations []*css.Declaration
	// Keyframes names the keyframes an animation utility depends on.
	Keyframes []string

	media      []string
	pseudo     []string
	mediaRank  int
	pseudoRank int
	ruleIndex  int
	tokenIndex int
}

// Selector returns the escaped class selector with pseudo-class suffixes.
func (u *Utility) Selector() string {
	return css.ClassSelector(u.Class) + strings.Join(u.pseudo, "")
}

// Media returns the combined media query, or "" for none.
func (u *Utility) Media() string {
	return strings.Join(u.media, " and ")
}

// Generator turns class names into CSS using a registry.
type Generator struct {
	reg     *token.Registry
	screens *token.Table
}

// NewGenerator creates a generator over the registry.
func NewGenerator(reg *token.Registry) *Generator {
	screens := reg.Table(token.Screens)
	if screens == nil {
		screens = token.NewTable()
	}
	return &Generator{reg: reg, screens: screens}
}

// Resolve resolves a class name. The second result is false when the class
// is not a recognized utility.
func (g *Generator) Resolve(class string) (*Utility, bool) {
	parts := splitVariants(class)
	base := parts[len(parts)-1]
	u := &Utility{Class: class, Variants: parts[:len(parts)-1]}
	if !g.applyVariants(u) {
		return nil, false
	}
	for i := range Rules {
		r := &Rules[i]
		key, ok := strings.CutPrefix(base, r.Prefix+"-")
		if !ok || key == "" {
			continue
		}
		value, idx, ok := g.value(r, key)
		if !ok {
			continue
		}
		u.Rule = r
		u.Key = key
		u.Value = value
		u.ruleIndex = i
		u.tokenIndex = idx
		for _, prop := range r.Properties {
			u.Declarations = append(u.Declarations, &css.Declaration{Property: prop, Value: value})
		}
		if r.Prefix == "animate" {
			for _, name := range token.AnimationNames(value) {
				if _, ok := g.reg.Keyframe(name); ok {
					u.Keyframes = append(u.Keyframes, name)
				}
			}
		}
		return u, true
	}
	return nil, false
}

func (g *Generator) applyVariants(u *Utility) bool {
	screen := -1
	media := make([]bool, len(mediaVariants))
	for _, v := range u.Variants {
		if i := g.screens.Index(v); i >= 0 {
			screen = max(screen, i)
			continue
		}
		if i := pseudoIndex(v); i >= 0 {
			u.pseudo = append(u.pseudo, pseudoVariants[i].suffix)
			u.pseudoRank = u.pseudoRank*(len(pseudoVariants)+1) + i + 1
			continue
		}
		if i := mediaIndex(v); i >= 0 {
			media[i] = true
			continue
		}
		return false
	}

	// Queries and rank depend on which variants are present, not their order.
	var queries []string
	for i, on := range media {
		if !on {
			continue
		}
		u.mediaRank += 1 << i
		if mediaVariants[i].query == "print" {
			u.media = append(u.media, "print")
			continue
		}
		queries = append(queries, mediaVariants[i].query)
	}
	if screen >= 0 {
		width, _ := g.screens.Get(g.screens.Keys()[screen])
		u.media = append(u.media, fmt.Sprintf("(min-width: %s)", width))
		u.mediaRank += (screen + 1) << len(mediaVariants)
	}
	u.media = append(u.media, queries...)
	return true
}

func pseudoIndex(name string) int {
	for i, v := range pseudoVariants {
		if v.name == name {
			return i
		}
	}
	return -1
}

func mediaIndex(name string) int {
	for i, v := range mediaVariants {
		if v.name == name {
			return i
		}
	}
	return -1
}

// value looks up key for rule r, returning the CSS value and its token position.
func (g *Generator) value(r *Rule, key string) (string, int, bool) {
	if strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
		v, ok := arbitrary(r.kind, key[1:len(key)-1])
		return v, arbitraryIndex, ok
	}
	offset := 0
	for _, cat := range r.Categories {
		table := g.reg.Table(cat)
		if v, ok := table.Get(key); ok {
			return v, offset + table.Index(key), true
		}
		offset += table.Len()
	}
	if r.kind == kindColor {
		return g.colorWithAlpha(r, key)
	}
	return "", 0, false
}

func (g *Generator) colorWithAlpha(r *Rule, key string) (string, int, bool) {
	i := strings.LastIndexByte(key, '/')
	if i <= 0 {
		return "", 0, false
	}
	name, pct := key[:i], key[i+1:]
	n, err := strconv.Atoi(pct)
	if err != nil || n < 0 || n > 100 {
		return "", 0, false
	}
	table := g.reg.Table(r.Categories[0])
	v, ok := table.Get(name)
	if !ok {
		return "", 0, false
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return "", 0, false
	}
	red, green, blue, _ := c.RGBA255()
	alpha := strconv.FormatFloat(float64(n)/100, 'f', -1, 64)
	return fmt.Sprintf("rgb(%d %d %d / %s)", red, green, blue, alpha), table.Index(name), true
}

func arbitrary(kind valueKind, raw string) (string, bool) {
	v := strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if v == "" {
		return "", false
	}
	switch kind {
	case kindNone:
		return "", false
	case kindColor:
		if strings.HasPrefix(v, "var(") {
			return v, true
		}
		if _, err := csscolorparser.Parse(v); err != nil {
			return "", false
		}
	case kindLength:
		if _, err := csscolorparser.Parse(v); err == nil && !startsWithDigit(v) {
			return "", false
		}
	}
	return v, true
}

func startsWithDigit(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}

// splitVariants splits "md:hover:p-4" into ["md", "hover", "p-4"],
// ignoring colons inside brackets.
func splitVariants(class string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				parts = append(parts, class[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, class[start:])
}

// Generate emits one rule per recognized identifier. Unrecognized
// identifiers are dropped. The result is independent of input order.
func (g *Generator) Generate(ids []string) []css.Node {
	seen := make(map[string]bool, len(ids))
	var utils []*Utility
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := g.Resolve(id); ok {
			utils = append(utils, u)
		}
	}
	return g.Nodes(utils)
}

// Nodes sorts resolved utilities and renders them, grouping adjacent rules
// that share a media query. Keyframes are emitted once, ahead of the group
// that first uses them.
func (g *Generator) Nodes(utils []*Utility) []css.Node {
	sort.SliceStable(utils, func(i, j int) bool {
		a, b := utils[i], utils[j]
		if a.mediaRank != b.mediaRank {
			return a.mediaRank < b.mediaRank
		}
		if am, bm := a.Media(), b.Media(); am != bm {
			return am < bm
		}
		if a.pseudoRank != b.pseudoRank {
			return a.pseudoRank < b.pseudoRank
		}
		if a.ruleIndex != b.ruleIndex {
			return a.ruleIndex < b.ruleIndex
		}
		if a.tokenIndex != b.tokenIndex {
			return a.tokenIndex < b.tokenIndex
		}
		return a.Class < b.Class
	})

	var out []css.Node
	emitted := make(map[string]bool)
	for i := 0; i < len(utils); {
		media := utils[i].Media()
		j := i
		for j < len(utils) && utils[j].Media() == media {
			j++
		}
		group := utils[i:j]
		for _, u := range group {
			for _, name := range u.Keyframes {
				if emitted[name] {
					continue
				}
				emitted[name] = true
				if kf, ok := g.KeyframesNode(name); ok {
					out = append(out, kf)
				}
			}
		}
		rules := make([]css.Node, 0, len(group))
		for _, u := range group {
			rules = append(rules, u.RuleNode())
		}
		if media == "" {
			out = append(out, rules...)
		} else {
			out = append(out, &css.AtRule{Name: "media", Params: media, Block: true, Nodes: rules})
		}
		i = j
	}
	return out
}

// RuleNode renders the utility as a style rule.
func (u *Utility) RuleNode() *css.Rule {
	rule := &css.Rule{Selector: u.Selector()}
	for _, d := range u.Declarations {
		rule.Nodes = append(rule.Nodes, &css.Declaration{Property: d.Property, Value: d.Value})
	}
	return rule
}

// KeyframesNode renders the named keyframes as an @keyframes block.
func (g *Generator) KeyframesNode(name string) (*css.AtRule, bool) {
	kf, ok := g.reg.Keyframe(name)
	if !ok {
		return nil, false
	}
	at := &css.AtRule{Name: "keyframes", Params: kf.Name, Block: true}
	for _, step := range kf.Steps {
		rule := &css.Rule{Selector: step.CSSSelector()}
		for _, d := range step.Declarations {
			rule.Nodes = append(rule.Nodes, &css.Declaration{Property: d.Property, Value: d.Value})
		}
		at.Nodes = append(at.Nodes, rule)
	}
	return at, true
}

// Declarations returns the declarations for class, for use by @apply.
func (g *Generator) Declarations(class string) ([]*css.Declaration, error) {
	u, ok := g.Resolve(class)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUtility, class)
	}
	if len(u.Variants) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrVariantInApply, class)
	}
	return css.Declarations(u.RuleNode().Nodes), nil
}
