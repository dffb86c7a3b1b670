/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	mfs := Project(t, "small")
	assert.True(t, mfs.Exists("/project/.config/utilicss.yaml"))
	assert.True(t, mfs.Exists("/project/index.html"))
}

func TestFiles(t *testing.T) {
	mfs := Files(map[string]string{"src/a.html": "<p>"})
	data, err := mfs.ReadFile("/project/src/a.html")
	assert.NoError(t, err)
	assert.Equal(t, "<p>", string(data))
}
