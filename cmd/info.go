// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bspdecomp/bsp"
	"bspdecomp/correlate"
	"bspdecomp/cvars"
)

var infoCorrelate bool

var infoCmd = &cobra.Command{
	Use:   "info <map.bsp>",
	Short: "Show the lumps and contents of a bsp file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bsp.Load(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printInfo(w, d)
		if infoCorrelate {
			opts := correlate.DefaultOptions()
			opts.Workers = max(cvars.Workers.Int(), 0)
			printCorrelation(w, correlate.Resolve(d, opts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoCorrelate, "correlate", true, "match occluders and areaportals to brushes")
}

func printInfo(out io.Writer, d *bsp.Data) {
	fmt.Fprintf(out, "%s: version %d, revision %d, crc %04x\n\n", d.Name, d.Version, d.MapRevision, d.Checksum)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LUMP\tOFFSET\tLENGTH\tVERSION")
	fmt.Fprintln(w, "----\t------\t------\t-------")
	for _, l := range d.Lumps {
		fmt.Fprintf(w, "%v\t%d\t%d\t%d\n", l.Type, l.Offset, l.Length, l.Version)
	}
	w.Flush()
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range []struct {
		name string
		n    int
	}{
		{"entities", len(d.Entities)},
		{"planes", len(d.Planes)},
		{"brushes", len(d.Brushes)},
		{"brush sides", len(d.BrushSides)},
		{"texinfos", len(d.TexInfos)},
		{"textures", len(d.TexNames)},
		{"occluders", len(d.Occluders)},
		{"occluder polys", len(d.OccluderPolys)},
		{"areaportals", len(d.Areaportals)},
	} {
		fmt.Fprintf(w, "%s:\t%d\n", c.name, c.n)
	}
	w.Flush()

	if len(d.Entities) != 0 {
		fmt.Fprintln(out, "\nworldspawn:")
		for _, kv := range d.Entities[0].KeyValues() {
			fmt.Fprintf(out, "  %q %q\n", kv.Key, kv.Value)
		}
	}
}

func printCorrelation(out io.Writer, r *correlate.ReallocationData) {
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tRECORD\tBRUSH\tSIDE\tFRACTION")
	fmt.Fprintln(w, "----\t------\t-----\t----\t--------")
	for _, m := range r.OccluderMatches() {
		fmt.Fprintf(w, "occluder\t%d\t%d\t%d\t%.4f\n", m.Record, m.Brush, m.Side, m.Fraction)
	}
	for _, m := range r.AreaportalMatches() {
		fmt.Fprintf(w, "areaportal\t%d\t%d\t%d\t%.4f\n", m.Record, m.Brush, m.Side, m.Fraction)
	}
	w.Flush()
	fmt.Fprintf(out, "%d occluder and %d areaportal matches\n",
		len(r.OccluderMatches()), len(r.AreaportalMatches()))
}
