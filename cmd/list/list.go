/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for utilicss.
package list

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/cmd/project"
	"bennypowers.dev/utilicss/cmd/render"
	"bennypowers.dev/utilicss/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List theme tokens",
	Long:  `List the tokens of the merged theme with optional filtering and formatting.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("category", "", "Filter by category (e.g., maxWidth, spacing)")
	Cmd.Flags().Bool("css", false, "Output as CSS custom properties")
	Cmd.Flags().String("format", "table", "Output format: table, json, css, markdown")
}

func run(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	css, _ := cmd.Flags().GetBool("css")
	format, _ := cmd.Flags().GetString("format")

	if css {
		format = "css"
	}

	p, err := project.Load()
	if err != nil {
		return err
	}
	reg, err := build.Registry(p.FS, p.Root, p.Config)
	if err != nil {
		return err
	}
	return Run(cmd.OutOrStdout(), reg, category, format, isTerminal(os.Stdout))
}

// Run renders the registry's tokens to w in format. A category filter must
// name a category the merged theme declares, known or not.
func Run(w io.Writer, reg *token.Registry, category, format string, swatches bool) error {
	if category != "" && !reg.Theme().Has(token.Category(category)) {
		return fmt.Errorf("unknown category %q", category)
	}

	rows := render.ComputeRows(reg.Tokens(), category)

	switch format {
	case "json":
		return render.JSON(w, rows)
	case "css":
		return render.CSS(w, rows)
	case "markdown", "md":
		return render.Markdown(w, rows)
	case "table", "":
		return render.Table(w, rows, swatches)
	}
	return fmt.Errorf("unknown format %q", format)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
