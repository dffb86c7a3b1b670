/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command for utilicss.
package build

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	buildlib "bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/cmd/project"
	"bennypowers.dev/utilicss/fs"
	"bennypowers.dev/utilicss/internal/logger"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Build the utility stylesheet",
	Long: `Build the stylesheet: inline imports, expand macros, flatten nesting,
inject the utilities referenced by content files, and minify in production.

Production is selected by --minify, or by UTILICSS_ENV or NODE_ENV set to "production".`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("input", "i", "", "Input stylesheet (overrides config)")
	Cmd.Flags().StringP("output", "o", "", "Output file, or - for stdout (overrides config)")
	Cmd.Flags().Bool("minify", false, "Build for production")
}

func run(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	minify, _ := cmd.Flags().GetBool("minify")

	p, err := project.Load()
	if err != nil {
		return err
	}
	if input != "" {
		p.Config.Input = input
	}
	if output == "" {
		output = p.Config.Output
	}

	return Run(cmd, p, output, minify || project.Production())
}

// Run builds p and writes the stylesheet to output, relative to the project
// root, or to the command's stdout when output is empty or "-".
func Run(cmd *cobra.Command, p *project.Project, output string, production bool) error {
	res, err := buildlib.Build(cmd.Context(), buildlib.Options{
		FS:         p.FS,
		Root:       p.Root,
		Config:     p.Config,
		Production: production,
		Logger:     logger.L(),
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(res.CSS)
		return err
	}

	path := output
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Root, path)
	}
	if err := fs.WriteFileAll(p.FS, path, res.CSS); err != nil {
		return fmt.Errorf("error writing %s: %w", output, err)
	}
	logger.Info("Wrote %s (%d bytes, %d files scanned, stages: %v)", output, len(res.CSS), len(res.Files), res.Stages)
	return nil
}
