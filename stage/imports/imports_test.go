/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package imports_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/utilicss/css"
	"bennypowers.dev/utilicss/internal/mapfs"
	"bennypowers.dev/utilicss/stage/imports"
)

func run(t *testing.T, files map[string]string, entry string) (string, error) {
	t.Helper()
	mfs := mapfs.New()
	for name, content := range files {
		mfs.AddFile(name, content, 0644)
	}
	src, err := mfs.ReadFile(entry)
	require.NoError(t, err)
	out, err := imports.New(mfs, entry, nil).Transform(context.Background(), src)
	return string(out), err
}

func TestInline(t *testing.T) {
	out, err := run(t, map[string]string{
		"/p/styles/main.css":           "@import \"parts/a.css\";\n@import url(b.css) print;\n.main { x: 1; }\n",
		"/p/styles/parts/a.css":        "@import \"nested/c.css\";\n.a { x: 2; }\n",
		"/p/styles/parts/nested/c.css": ".c { x: 3; }\n",
		"/p/styles/b.css":              ".b { x: 4; }\n",
	}, "/p/styles/main.css")
	require.NoError(t, err)

	want := `.c {
  x: 3;
}
.a {
  x: 2;
}
@media print {
  .b {
    x: 4;
  }
}
.main {
  x: 1;
}
`
	assert.Equal(t, want, out)
}

func TestRemoteKept(t *testing.T) {
	out, err := run(t, map[string]string{
		"/p/main.css": "@import url(\"https://fonts.example.com/inter.css\");\n.a { x: 1; }\n",
	}, "/p/main.css")
	require.NoError(t, err)
	assert.Contains(t, out, `@import url("https://fonts.example.com/inter.css");`)
}

func TestCycle(t *testing.T) {
	_, err := run(t, map[string]string{
		"/p/a.css": "@import \"b.css\";\n",
		"/p/b.css": ".b { x: 1; }\n@import \"a.css\";\n",
	}, "/p/a.css")
	require.Error(t, err)
	assert.ErrorContains(t, err, "import cycle")

	var cerr *css.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "/p/b.css", cerr.Pos.File)
	assert.Equal(t, 2, cerr.Pos.Line)
}

func TestMissing(t *testing.T) {
	_, err := run(t, map[string]string{
		"/p/a.css": ".a { x: 1; }\n@import \"gone.css\";\n",
	}, "/p/a.css")
	require.Error(t, err)

	var cerr *css.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Pos.Line)
	assert.Contains(t, cerr.Message, `cannot import "gone.css"`)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		params, target, media string
		wantErr               bool
	}{
		{params: `"a.css"`, target: "a.css"},
		{params: `'a.css' screen and (min-width: 40rem)`, target: "a.css", media: "screen and (min-width: 40rem)"},
		{params: `url(a.css)`, target: "a.css"},
		{params: `url("a.css") print`, target: "a.css", media: "print"},
		{params: `a.css`, wantErr: true},
		{params: `""`, wantErr: true},
		{params: `url(a.css`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.params, func(t *testing.T) {
			target, media, err := imports.ParseParams(tt.params)
			if tt.wantErr {
				require.ErrorIs(t, err, imports.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, target)
			assert.Equal(t, tt.media, media)
		})
	}
}
