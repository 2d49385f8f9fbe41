package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

var (
	synthSeed  uint64
	synthNoise float64
)

func init() {
	synthCmd := &cobra.Command{
		Use:   "synth output.csv",
		Short: "Write a synthetic FM band capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := builder.SyntheticFMBand(synthSeed, synthNoise).WriteCapture(f); err != nil {
				f.Close()
				return fmt.Errorf("write capture: %w", err)
			}
			return f.Close()
		},
	}
	synthCmd.Flags().Uint64Var(&synthSeed, "seed", 1, "noise generator seed")
	synthCmd.Flags().Float64Var(&synthNoise, "noise", 1.0, "noise amplitude in dB")
	rootCmd.AddCommand(synthCmd)
}
