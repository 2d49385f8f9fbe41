package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "summarize capture.csv",
		Short: "Print the column summaries of one capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := builder.NewLoggerFromConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
			if err != nil {
				return err
			}
			defer logger.Flush()

			w, err := builder.NewAssembler(builder.AssemblerWithLogger(logger)).AssembleFile(args[0])
			if err != nil {
				return err
			}
			bundle, err := builder.NewAggregator(builder.AggregatorWithLogger(logger)).Summarize(filepath.Base(args[0]), w)
			if err != nil {
				return err
			}
			return printSummaries(cmd.OutOrStdout(), args[0], w, bundle)
		},
	})
}

func printSummaries(out io.Writer, path string, w *builder.Waterfall, bundle builder.SummaryBundle) error {
	fmt.Fprintf(out, "capture   %s\n", filepath.Base(path))
	if name, err := builder.ParseCaptureName(path); err == nil {
		fmt.Fprintf(out, "span      %s\n", name.Label())
	}
	fmt.Fprintf(out, "sweeps    %d\n", w.Rows())
	fmt.Fprintf(out, "bins      %d from %s step %s\n\n", w.Cols(),
		builder.FloatToHz(bundle.FreqStart, 3, false), builder.FloatToHz(bundle.FreqStep, 3, false))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "KIND\tMIN\tMAX\tMEAN\tSTD\tVALLEYS\tPEAKS\tNOISE FLOOR\tSTRONG SIGNAL\t")
	for _, s := range bundle.All() {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%.2f\t%.2f\t\n",
			s.Kind, s.Min, s.Max, s.Mean, s.Std,
			len(s.Peak.Min.Idx), len(s.Peak.Max.Idx), s.NoiseFloor(), s.StrongSignal())
	}
	return tw.Flush()
}
