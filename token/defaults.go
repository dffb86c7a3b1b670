/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultTheme returns the built-in base scale that project themes extend.
func DefaultTheme() *Theme {
	theme := NewTheme()
	if err := yaml.Unmarshal(defaultsYAML, theme); err != nil {
		panic(fmt.Sprintf("token: embedded defaults are invalid: %v", err))
	}
	return theme
}
