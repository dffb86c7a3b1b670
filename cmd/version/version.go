/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for utilicss.
package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/utilicss/internal/version"
)

// Cmd is the version cobra command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the utilicss version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return Write(cmd.OutOrStdout(), version.Get(), format)
	},
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Write prints info as a single line or as JSON.
func Write(w io.Writer, info version.Info, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "text", "":
		_, err := fmt.Fprintf(w, "utilicss %s\n", info)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
