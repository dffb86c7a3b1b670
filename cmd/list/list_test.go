/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package list

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/utilicss/token"
)

func sampleRegistry() *token.Registry {
	theme := token.NewTheme()
	theme.SetTable(token.MaxWidth, token.TableOf("32", "32rem"))
	theme.SetTable(token.Spacing, token.TableOf("13", "3.25rem"))
	theme.SetTable(token.Colors, token.TableOf("neutral-900", "#171717"))
	theme.SetTable(token.Category("fontFamily"), token.TableOf("mono", "ui-monospace"))
	return token.Load(theme)
}

func TestRun(t *testing.T) {
	t.Run("css", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Run(&buf, sampleRegistry(), "", "css", false))
		assert.Equal(t, ":root {\n  --max-width-32: 32rem;\n  --spacing-13: 3.25rem;\n  --colors-neutral-900: #171717;\n  --font-family-mono: ui-monospace;\n}\n", buf.String())
	})

	t.Run("category filter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Run(&buf, sampleRegistry(), "spacing", "table", false))
		assert.Contains(t, buf.String(), "--spacing-13")
		assert.NotContains(t, buf.String(), "--max-width-32")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Run(&buf, sampleRegistry(), "", "markdown", false))
		assert.Contains(t, buf.String(), "## Max Width\n")
	})

	t.Run("category outside the known set", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Run(&buf, sampleRegistry(), "fontFamily", "table", false))
		assert.Contains(t, buf.String(), "--font-family-mono")
		assert.NotContains(t, buf.String(), "--spacing-13")
	})

	t.Run("undeclared category", func(t *testing.T) {
		err := Run(&bytes.Buffer{}, sampleRegistry(), "screens", "table", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Run(&bytes.Buffer{}, sampleRegistry(), "", "yaml", false)
		require.Error(t, err)
	})
}
