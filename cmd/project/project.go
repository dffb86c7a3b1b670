/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package project resolves the project root and configuration shared by all
// commands from flags and environment.
package project

import (
	"fmt"

	"github.com/spf13/viper"

	"bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/config"
	"bennypowers.dev/utilicss/fs"
)

// Project is a loaded project.
type Project struct {
	FS     fs.FileSystem
	Root   string
	Config *config.Config
}

// Load reads the configuration named by --config, or the one under --root.
func Load() (*Project, error) {
	return LoadWith(fs.NewOSFileSystem(), viper.GetString("root"), viper.GetString("config"))
}

// LoadWith loads a project from an explicit filesystem, root and config path.
func LoadWith(filesystem fs.FileSystem, root, configPath string) (*Project, error) {
	if root == "" {
		root = "."
	}
	cfg, err := config.LoadFrom(filesystem, root, configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return &Project{FS: filesystem, Root: root, Config: cfg}, nil
}

// Production reports whether UTILICSS_ENV or NODE_ENV selects production.
func Production() bool {
	return build.IsProduction(viper.GetString("env"))
}
