/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Declaration is one property/value pair inside a keyframe step.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Step is one checkpoint of a keyframe timeline.
type Step struct {
	// Selector is the checkpoint list as written (e.g., "0%, 100%").
	Selector string `json:"selector"`

	// Declarations are the styles applied at this checkpoint.
	Declarations []Declaration `json:"declarations"`
}

// Keyframe is a named animation timeline.
type Keyframe struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Checkpoints returns the percentages of every step, in declaration order.
// "from" and "to" map to 0 and 100.
func (k *Keyframe) Checkpoints() ([]float64, error) {
	var result []float64
	for _, step := range k.Steps {
		for part := range strings.SplitSeq(step.Selector, ",") {
			pct, err := ParseCheckpoint(part)
			if err != nil {
				return nil, err
			}
			result = append(result, pct)
		}
	}
	return result, nil
}

// ParseCheckpoint parses a single keyframe selector such as "50%", "from" or "to".
// The trailing percent sign is optional; the number must lie in [0,100].
func ParseCheckpoint(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "from":
		return 0, nil
	case "to":
		return 100, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a percentage", ErrInvalidCheckpoint, s)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: %q is outside 0%%..100%%", ErrInvalidCheckpoint, s)
	}
	return n, nil
}

// CSSSelector returns the step selector with bare numbers given a "%" suffix.
func (s Step) CSSSelector() string {
	parts := strings.Split(s.Selector, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := strconv.ParseFloat(p, 64); err == nil {
			p += "%"
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

var animationKeywords = map[string]bool{
	"none": true, "infinite": true, "linear": true,
	"ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true,
	"step-start": true, "step-end": true,
	"normal": true, "reverse": true, "alternate": true, "alternate-reverse": true,
	"forwards": true, "backwards": true, "both": true,
	"running": true, "paused": true,
	"initial": true, "inherit": true, "unset": true,
}

// AnimationNames extracts the keyframe names referenced by an animation
// shorthand value, e.g. "pulse-brightness 2s ease-in-out infinite".
func AnimationNames(value string) []string {
	var names []string
	for _, layer := range splitTopLevel(value, ',') {
		for _, field := range strings.Fields(layer) {
			if animationKeywords[strings.ToLower(field)] {
				continue
			}
			if strings.ContainsRune(field, '(') || startsWithNumber(field) {
				continue
			}
			names = append(names, field)
			break
		}
	}
	return names
}

func startsWithNumber(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r) || r == '.' || r == '-' || r == '+'
	}
	return false
}

// splitTopLevel splits s on sep, ignoring separators inside parentheses.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(sep))
			}
		}
	}
	return append(parts, s[start:])
}
