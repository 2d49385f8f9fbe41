package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stations",
		Short: "List the stations of the scan catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			catalog, err := sess.Store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printStations(cmd.OutOrStdout(), catalog)
		},
	})
}

func printStations(out io.Writer, c builder.Catalog) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CENTER\tBANDWIDTH\tPOWER\tRELATIVE\tNAME")
	for _, s := range c.Stations {
		name := ""
		if s.HasName() {
			name = *s.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%s\n",
			builder.FloatToHz(s.FreqCenter, 3, true), builder.FloatToHz(s.Bw, 1, false), s.PowerDB, s.RelativeDB, name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d stations\n", c.Len())
	return nil
}
