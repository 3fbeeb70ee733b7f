// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmd is the command line interface of bspdecomp.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bspdecomp/conlog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bspdecomp",
	Short: "bspdecomp - Source engine bsp to vmf decompiler",
	Long: `bspdecomp rebuilds the world brushes of a compiled Source engine map.
Occluder and areaportal brushes are recovered from their compiled
polygons and textures are projected back onto the brush sides.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		conlog.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
