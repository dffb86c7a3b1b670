/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/utilicss/token"
	"bennypowers.dev/utilicss/utility"
)

func TestResolved(t *testing.T) {
	gen := utility.NewGenerator(token.Load(token.DefaultTheme()))
	ids := []string{"hover:p-4", "max-w-999", "m-1", "text-neutral-900"}

	assert.Equal(t, []string{"hover:p-4", "m-1", "text-neutral-900"}, Resolved(gen, ids))
	assert.Len(t, ids, 4)
}

func TestWrite(t *testing.T) {
	var text bytes.Buffer
	require.NoError(t, Write(&text, []string{"m-1", "p-4"}, "text"))
	assert.Equal(t, "m-1\np-4\n", text.String())

	var js bytes.Buffer
	require.NoError(t, Write(&js, nil, "json"))
	assert.Equal(t, "[]\n", js.String())

	require.Error(t, Write(&bytes.Buffer{}, nil, "yaml"))
}
