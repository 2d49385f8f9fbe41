package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "detect capture.csv...",
		Short: "Merge the stations of captures into the scan catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			report, err := sess.Runner.Run(cmd.Context(), args...)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), sess.Store.Name(), report)
		},
	})
}

func printReport(out io.Writer, catalog string, r builder.Report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CAPTURE\tSPAN\tADDED\tEXPORT")
	for _, c := range r.Captures {
		added := fmt.Sprint(len(c.Added))
		if c.Skipped {
			added = "skipped"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Capture, c.Label, added, c.Export)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, c := range r.Captures {
		for _, s := range c.Added {
			fmt.Fprintf(out, "+ %s  bw %s  %.1f dB (+%.1f)\n",
				builder.FloatToHz(s.FreqCenter, 3, false), builder.FloatToHz(s.Bw, 1, false), s.PowerDB, s.RelativeDB)
		}
	}

	state := "unchanged"
	if r.Saved {
		state = "saved"
	}
	fmt.Fprintf(out, "\nrun %s: %d new, %d stations in %s (%s) in %s\n",
		r.RunID, r.Added, r.CatalogSize, catalog, state, r.Duration.Round(time.Millisecond))
	if r.CatalogExport != "" {
		fmt.Fprintf(out, "catalog exported to %s\n", r.CatalogExport)
	}
	return nil
}
