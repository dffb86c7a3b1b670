/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for utilicss.
package validate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/cmd/project"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project configuration",
	Long: `Validate the configuration and merged theme: keyframe checkpoints,
animation references and color values, plus the plugin list.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	p, err := project.Load()
	if err != nil {
		return err
	}
	return Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), p, quiet)
}

// Run validates p, printing each problem to errOut.
func Run(out, errOut io.Writer, p *project.Project, quiet bool) error {
	reg, err := build.Registry(p.FS, p.Root, p.Config)
	if err != nil {
		errs := multierr.Errors(err)
		for _, e := range errs {
			fmt.Fprintf(errOut, "Error: %v\n", e)
		}
		return fmt.Errorf("validation failed: %d error(s)", len(errs))
	}

	plugins := p.Config.Plugins
	if len(plugins) == 0 {
		plugins = build.DefaultPlugins
	}
	for _, spec := range plugins {
		if !build.KnownPlugin(spec.Name) {
			fmt.Fprintf(errOut, "Error: %v %q\n", build.ErrUnknownPlugin, spec.Name)
			return fmt.Errorf("validation failed")
		}
	}

	if !quiet {
		fmt.Fprintf(out, "%d tokens, %d keyframes, %d plugins\n",
			len(reg.Tokens()), reg.Theme().Keyframes().Len(), len(plugins))
		fmt.Fprintln(out, "Configuration valid.")
	}
	return nil
}
