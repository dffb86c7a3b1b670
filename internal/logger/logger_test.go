/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Warn("careful %s", "now")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "warn")

	SetVerbose(true)
	Debug("visible %d", 3)
	assert.Contains(t, buf.String(), "visible 3")
}

func TestDiscard(t *testing.T) {
	SetOutput(io.Discard)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	assert.NotPanics(t, func() { Warn("nothing") })
	assert.NotNil(t, L())
}
