// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bspdecomp/bsp"
	"bspdecomp/config"
	"bspdecomp/decompiler"
)

var (
	decompileOutput string
	decompileConfig string
	decompileSet    []string
	decompileCache  string
)

var decompileCmd = &cobra.Command{
	Use:   "decompile <map.bsp>",
	Short: "Write the world brushes of a bsp file as vmf",
	Long: `Reads a VBSP file (version 19 to 21) and writes its brushes as a vmf.
Options are taken from bspdecomp.yaml next to the input or the file given
with --config and may be overridden with --set name=value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		d, err := bsp.Load(input)
		if err != nil {
			return err
		}

		conf, err := loadConfig(input)
		if err != nil {
			return err
		}

		output := decompileOutput
		if output == "" {
			output = defaultOutput(input)
		}
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}

		s := decompiler.New(d, conf)
		s.CachePath = decompileCache
		if err := writeOutput(f, func(w io.Writer) error {
			return s.Run(cmd.Context(), w)
		}); err != nil {
			os.Remove(output)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d solids, %d sides\n", output, s.Stats.Solids, s.Stats.Sides)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decompileCmd)
	decompileCmd.Flags().StringVarP(&decompileOutput, "output", "o", "", "output vmf (default <map>_d.vmf)")
	decompileCmd.Flags().StringVar(&decompileConfig, "config", "", "yaml config file")
	decompileCmd.Flags().StringArrayVar(&decompileSet, "set", nil, "set option name=value, may be repeated")
	decompileCmd.Flags().StringVar(&decompileCache, "cache", "", "file to keep the correlation result in")
}

// loadConfig applies the config file and the command line overrides.
func loadConfig(input string) (*config.Config, error) {
	path := decompileConfig
	if path == "" {
		path, _ = config.Find(input)
	}
	var file *config.File
	if path != "" {
		f, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(); err != nil {
			return nil, errors.Wrap(err, path)
		}
		file = f
	}
	if err := config.SetOverrides(decompileSet); err != nil {
		return nil, err
	}
	return config.Build(file)
}

// writeOutput runs write on a buffered f and closes f. Partial output is
// left to the caller to remove.
func writeOutput(f io.WriteCloser, write func(io.Writer) error) error {
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "writing output")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_d.vmf"
}
