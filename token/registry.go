/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"go.uber.org/multierr"
)

// Registry is the merged, read-only token set used for generation.
type Registry struct {
	theme *Theme
}

// Load merges base with each extension in order, and returns the registry.
// On key collision the later layer wins; iteration order is the position of
// first occurrence. Unknown categories are carried through unchanged.
func Load(base *Theme, extensions ...*Theme) *Registry {
	merged := base.Clone()
	for _, ext := range extensions {
		merged = Merge(merged, ext)
	}
	return &Registry{theme: merged}
}

// Theme returns the merged theme.
func (r *Registry) Theme() *Theme {
	return r.theme
}

// Table returns the merged table of a category (nil when absent).
func (r *Registry) Table(c Category) *Table {
	return r.theme.Table(c)
}

// Lookup returns the value of key in category c.
func (r *Registry) Lookup(c Category, key string) (string, bool) {
	return r.theme.Table(c).Get(key)
}

// Keyframe returns a keyframe definition by name.
func (r *Registry) Keyframe(name string) (*Keyframe, bool) {
	return r.theme.Keyframes().Get(name)
}

// Tokens returns every table entry, in category then key order.
func (r *Registry) Tokens() []*Token {
	var result []*Token
	for _, cat := range r.theme.Categories() {
		for k, v := range r.theme.Table(cat).All() {
			result = append(result, &Token{Category: cat, Key: k, Value: v})
		}
	}
	return result
}

// Validate checks referential integrity of the merged theme.
// Every violation is reported as a *ConfigError; they are combined with multierr.
func (r *Registry) Validate() error {
	var err error

	for name, kf := range r.theme.Keyframes().All() {
		if _, cerr := kf.Checkpoints(); cerr != nil {
			err = multierr.Append(err, &ConfigError{
				Category: Keyframes,
				Key:      name,
				Message:  cerr.Error(),
				Err:      ErrInvalidCheckpoint,
			})
		}
	}

	for key, value := range r.theme.Table(Animation).All() {
		for _, name := range AnimationNames(value) {
			if _, ok := r.Keyframe(name); ok {
				continue
			}
			err = multierr.Append(err, &ConfigError{
				Category: Animation,
				Key:      key,
				Message:  fmt.Sprintf("references undefined keyframes %q", name),
				Err:      ErrUndefinedKeyframes,
			})
		}
	}

	for key, value := range r.theme.Table(Colors).All() {
		if isColorKeyword(value) {
			continue
		}
		if _, perr := csscolorparser.Parse(value); perr != nil {
			err = multierr.Append(err, &ConfigError{
				Category: Colors,
				Key:      key,
				Message:  fmt.Sprintf("%q is not a CSS color", value),
				Err:      ErrInvalidColor,
			})
		}
	}

	return err
}

// isColorKeyword reports values that are valid colors but not parseable ones.
func isColorKeyword(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "currentcolor", "current", "inherit", "initial", "unset", "transparent":
		return true
	}
	return strings.HasPrefix(v, "var(")
}
