/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for token configuration.
var (
	// ErrUndefinedKeyframes indicates an animation names keyframes that do not exist.
	ErrUndefinedKeyframes = errors.New("undefined keyframes")

	// ErrInvalidCheckpoint indicates a keyframe step outside 0%..100%.
	ErrInvalidCheckpoint = errors.New("invalid keyframe checkpoint")

	// ErrInvalidColor indicates a color token that does not parse.
	ErrInvalidColor = errors.New("invalid color")

	// ErrMalformedCategory indicates a category whose shape is not a table.
	ErrMalformedCategory = errors.New("malformed category")
)

// ConfigError reports malformed or inconsistent token configuration.
// It is fatal: no CSS is generated once one is found.
type ConfigError struct {
	// Category is the offending category.
	Category Category
	// Key is the offending key (animation name, keyframe name, ...).
	Key string
	// Message describes what's wrong.
	Message string
	// Err is the sentinel classifying the error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("config")
	if e.Category != "" {
		sb.WriteString(": ")
		sb.WriteString(string(e.Category))
	}
	if e.Key != "" {
		fmt.Fprintf(&sb, " %q", e.Key)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap returns the sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
