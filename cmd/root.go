/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for utilicss.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/utilicss/cmd/build"
	"bennypowers.dev/utilicss/cmd/list"
	"bennypowers.dev/utilicss/cmd/scan"
	"bennypowers.dev/utilicss/cmd/validate"
	"bennypowers.dev/utilicss/cmd/version"
	"bennypowers.dev/utilicss/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "utilicss",
	Short: "Generate minimal utility stylesheets from design tokens",
	Long: `utilicss resolves design token tables into utility classes, keeps only the
classes your content references, and runs the stylesheet through an import,
macro, nesting and minify pipeline.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command. An interrupt cancels the running build.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default .config/utilicss.{yaml,yml,json})")
	flags.StringP("root", "C", ".", "Project root directory")
	flags.BoolP("verbose", "v", false, "Log each stage")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("root", flags.Lookup("root"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindEnv("env", "UTILICSS_ENV", "NODE_ENV")

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(scan.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
