/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/utilicss/token"
)

func decodeTheme(t *testing.T, src string) *token.Theme {
	t.Helper()
	theme := token.NewTheme()
	require.NoError(t, yaml.Unmarshal([]byte(src), theme))
	return theme
}

func TestMergeTables_Override(t *testing.T) {
	base := token.TableOf("a", "1rem", "b", "2rem")
	ext := token.TableOf("b", "3rem", "c", "4rem")

	merged := token.MergeTables(base, ext)

	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	v, _ := merged.Get("a")
	assert.Equal(t, "1rem", v)
	v, _ = merged.Get("b")
	assert.Equal(t, "3rem", v)
	v, _ = merged.Get("c")
	assert.Equal(t, "4rem", v)

	// inputs are untouched
	v, _ = base.Get("b")
	assert.Equal(t, "2rem", v)
}

func TestOrderedMap_OverwriteKeepsPosition(t *testing.T) {
	m := token.NewOrderedMap[int]()
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("x", 3)

	assert.Equal(t, []string{"x", "y"}, m.Keys())
	assert.Equal(t, 0, m.Index("x"))
	assert.Equal(t, -1, m.Index("z"))
	v, ok := m.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLoad_MergesPerCategory(t *testing.T) {
	base := decodeTheme(t, `
spacing:
  "1": 0.25rem
  "2": 0.5rem
maxWidth:
  "32": 8rem
`)
	ext := decodeTheme(t, `
spacing:
  "2": 0.75rem
  "51.25": 12.8125rem
fontFamily:
  mono: [ui-monospace, monospace]
`)

	reg := token.Load(base, ext)

	assert.Equal(t, []string{"1", "2", "51.25"}, reg.Table(token.Spacing).Keys())
	v, ok := reg.Lookup(token.Spacing, "2")
	require.True(t, ok)
	assert.Equal(t, "0.75rem", v)

	v, ok = reg.Lookup(token.MaxWidth, "32")
	require.True(t, ok)
	assert.Equal(t, "8rem", v)

	// unknown categories are carried through
	v, ok = reg.Lookup("fontFamily", "mono")
	require.True(t, ok)
	assert.Equal(t, "ui-monospace, monospace", v)
	assert.False(t, token.Category("fontFamily").Known())
}

func TestLoad_SuccessiveExtensionsLastWins(t *testing.T) {
	v1 := decodeTheme(t, "spacing: {\"15\": 3.5rem, \"30\": 7.5rem}")
	v2 := decodeTheme(t, "spacing: {\"15\": 3.75rem}")

	reg := token.Load(token.NewTheme(), v1, v2)

	v, _ := reg.Lookup(token.Spacing, "15")
	assert.Equal(t, "3.75rem", v)
	assert.Equal(t, []string{"15", "30"}, reg.Table(token.Spacing).Keys())
}

func TestOverride_ReplacesCategory(t *testing.T) {
	base := decodeTheme(t, "spacing: {\"1\": 0.25rem, \"2\": 0.5rem}\nscreens: {sm: 640px}")
	over := decodeTheme(t, "spacing: {\"4\": 1rem}")

	theme := base.Override(over)

	assert.Equal(t, []string{"4"}, theme.Table(token.Spacing).Keys())
	assert.Equal(t, []string{"sm"}, theme.Table(token.Screens).Keys())
}

func TestUnmarshalYAML_FlattensNested(t *testing.T) {
	theme := decodeTheme(t, `
colors:
  neutral:
    DEFAULT: "#737373"
    500: "#737373"
    900: "#171717"
  white: "#fff"
`)
	table := theme.Table(token.Colors)
	assert.Equal(t, []string{"neutral", "neutral-500", "neutral-900", "white"}, table.Keys())
}

func TestUnmarshalYAML_Keyframes(t *testing.T) {
	theme := decodeTheme(t, `
keyframes:
  pulse-brightness:
    "0%, 100%": { filter: brightness(0.9) }
    "50%": { filter: brightness(1) }
  fade:
    from: { opacity: "0", animationTimingFunction: ease-in }
`)
	kf, ok := theme.Keyframes().Get("pulse-brightness")
	require.True(t, ok)
	require.Len(t, kf.Steps, 2)
	assert.Equal(t, "0%, 100%", kf.Steps[0].Selector)
	assert.Equal(t, []token.Declaration{{Property: "filter", Value: "brightness(0.9)"}}, kf.Steps[0].Declarations)

	fade, ok := theme.Keyframes().Get("fade")
	require.True(t, ok)
	assert.Equal(t, "animation-timing-function", fade.Steps[0].Declarations[1].Property)
}

func TestUnmarshalYAML_MalformedCategory(t *testing.T) {
	theme := token.NewTheme()
	err := yaml.Unmarshal([]byte("spacing: 4px\n"), theme)
	require.Error(t, err)

	var cerr *token.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, token.Spacing, cerr.Category)
	assert.ErrorIs(t, err, token.ErrMalformedCategory)
}

func TestValidate_AnimationKeyframeIntegrity(t *testing.T) {
	src := `
keyframes:
  pulse-brightness:
    "0%, 100%": { filter: brightness(0.9) }
    "50%": { filter: brightness(1) }
animation:
  pulse-brightness: pulse-brightness 2s ease-in-out infinite
`
	t.Run("defined", func(t *testing.T) {
		reg := token.Load(decodeTheme(t, src))
		assert.NoError(t, reg.Validate())
	})

	t.Run("missing", func(t *testing.T) {
		reg := token.Load(decodeTheme(t, `
animation:
  pulse-brightness: pulse-brightness 2s ease-in-out infinite
`))
		err := reg.Validate()
		require.Error(t, err)

		var cerr *token.ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, token.Animation, cerr.Category)
		assert.Contains(t, err.Error(), "pulse-brightness")
		assert.ErrorIs(t, err, token.ErrUndefinedKeyframes)
	})
}

func TestValidate_Checkpoints(t *testing.T) {
	reg := token.Load(decodeTheme(t, `
keyframes:
  broken:
    "0%": { opacity: "0" }
    "150%": { opacity: "1" }
`))
	err := reg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, token.ErrInvalidCheckpoint)
	assert.Contains(t, err.Error(), "broken")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	reg := token.Load(decodeTheme(t, `
colors:
  brand: not-a-color
  current: currentColor
animation:
  a: missing-a 1s
  b: missing-b 1s
`))
	err := reg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-a")
	assert.Contains(t, err.Error(), "missing-b")
	assert.Contains(t, err.Error(), "not-a-color")
	assert.NotContains(t, err.Error(), "currentColor")
}

func TestDefaultTheme_Validates(t *testing.T) {
	reg := token.Load(token.DefaultTheme())
	require.NoError(t, reg.Validate())

	v, ok := reg.Lookup(token.Spacing, "4")
	require.True(t, ok)
	assert.Equal(t, "1rem", v)

	_, ok = reg.Keyframe("spin")
	assert.True(t, ok)
}

func TestAnimationNames(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"notify-show 5s ease-in-out", []string{"notify-show"}},
		{"pulse-brightness 2s ease-in-out infinite", []string{"pulse-brightness"}},
		{"ping 1s cubic-bezier(0, 0, 0.2, 1) infinite", []string{"ping"}},
		{"2s linear spin", []string{"spin"}},
		{"fade 1s, slide 2s", []string{"fade", "slide"}},
		{"none", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, token.AnimationNames(tt.value))
		})
	}
}

func TestParseCheckpoint(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0%", 0, false},
		{" 50% ", 50, false},
		{"100", 100, false},
		{"from", 0, false},
		{"to", 100, false},
		{"101%", 0, true},
		{"-1%", 0, true},
		{"half", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := token.ParseCheckpoint(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, token.ErrInvalidCheckpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSSVariableName(t *testing.T) {
	tok := &token.Token{Category: token.MaxWidth, Key: "51.25"}
	assert.Equal(t, "--max-width-51_25", tok.CSSVariableName())
}
