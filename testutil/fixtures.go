/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides the fixture projects and golden stylesheets
// shared by utilicss tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/utilicss/internal/mapfs"
)

// Root is where fixture projects are mounted in the in-memory filesystem.
const Root = "/project"

var update = flag.Bool("update", false, "rewrite golden files under testdata/golden")

// testdata returns the module's testdata directory, found next to go.mod
// above the package under test.
func testdata(t testing.TB) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("no go.mod above the test directory")
		}
		dir = parent
	}
}

// Project mounts testdata/fixtures/<name> at Root.
func Project(t testing.TB, name string) *mapfs.MapFileSystem {
	t.Helper()
	src := os.DirFS(filepath.Join(testdata(t), "fixtures", name))
	mfs := mapfs.New()
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(Root, filepath.FromSlash(path)), string(data), 0o644)
		return nil
	})
	require.NoError(t, err, "loading fixture project %s", name)
	return mfs
}

// Files builds an in-memory project from contents keyed by paths relative
// to Root.
func Files(files map[string]string) *mapfs.MapFileSystem {
	mfs := mapfs.New()
	for name, content := range files {
		mfs.AddFile(filepath.Join(Root, name), content, 0o644)
	}
	return mfs
}

// Golden compares a built stylesheet with testdata/golden/<name>.
// Run with -update to rewrite the golden file from actual.
func Golden(t testing.TB, name string, actual []byte) {
	t.Helper()
	path := filepath.Join(testdata(t), "golden", name)
	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, actual, 0o644))
		t.Logf("updated %s", path)
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err, "reading golden file %s", name)
	assert.Equal(t, string(want), string(actual))
}
