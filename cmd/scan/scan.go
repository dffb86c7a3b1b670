/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package scan provides the scan command for utilicss.
package scan

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/utilicss/build"
	"bennypowers.dev/utilicss/cmd/project"
	"bennypowers.dev/utilicss/internal/logger"
	scanlib "bennypowers.dev/utilicss/scan"
	"bennypowers.dev/utilicss/utility"
)

// Cmd is the scan cobra command.
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "List class candidates found in content files",
	Long: `Scan the configured content files and print every utility class candidate.
With --resolved, only candidates that produce a utility are printed.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("resolved", false, "Only print candidates that resolve to a utility")
	Cmd.Flags().String("format", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	resolved, _ := cmd.Flags().GetBool("resolved")
	format, _ := cmd.Flags().GetString("format")

	p, err := project.Load()
	if err != nil {
		return err
	}

	reg, err := build.Registry(p.FS, p.Root, p.Config)
	if err != nil {
		return err
	}
	files, empty, err := p.Config.ExpandContent(p.FS, p.Root)
	if err != nil {
		return err
	}
	for _, pattern := range empty {
		logger.Warn("Content pattern %q matched no files", pattern)
	}

	scanner := scanlib.NewScanner(p.FS, utility.Prefixes(), logger.L())
	set, err := scanner.Scan(cmd.Context(), files)
	if err != nil {
		return err
	}

	ids := set.Sorted()
	if resolved {
		gen := utility.NewGenerator(reg)
		ids = Resolved(gen, ids)
	}
	return Write(cmd.OutOrStdout(), ids, format)
}

// Resolved keeps the ids gen can turn into a utility.
func Resolved(gen *utility.Generator, ids []string) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := gen.Resolve(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// Write prints ids one per line, or as a JSON array.
func Write(w io.Writer, ids []string, format string) error {
	switch format {
	case "json":
		if ids == nil {
			ids = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	case "text", "":
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
