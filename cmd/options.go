// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bspdecomp/cvar"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the options that can be set in the config file or with --set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDEFAULT\tDESCRIPTION")
		for _, cv := range cvar.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", cv.Name(), cv.Default(), cv.Help())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
