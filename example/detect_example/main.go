package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func writeCapture(dir, name string, seed uint64) string {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := builder.SyntheticFMBand(seed, 1.0).WriteCapture(f); err != nil {
		panic(err)
	}
	return path
}

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "sdrhunter-example-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	captures := []string{
		writeCapture(dir, "88Mhz-91.2Mhz-3125-1i-50q.csv", 1),
		writeCapture(dir, "88Mhz-91.2Mhz-3125-1i-50q-b.csv", 2),
	}

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true), builder.LoggerWithLevel("info"))
	defer logger.Flush()

	detector := builder.NewDetector(
		builder.ScanParams{Name: "fm", BwMin: 3e3, BwMax: 50e3, MinRelativeDB: 6},
		builder.DetectorWithLogger(logger),
	)
	store := builder.NewFileStore(filepath.Join(dir, "scanresult.json"), builder.StoreWithLogger(logger))

	runner := builder.NewRunner(detector, store,
		builder.RunnerWithLogger(logger),
		builder.RunnerWithWorkers(2),
	)

	report, err := runner.Run(ctx, captures...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	for _, c := range report.Captures {
		fmt.Printf("%s (%s): %d new\n", c.Capture, c.Label, len(c.Added))
	}
	catalog, err := store.Load(ctx)
	if err != nil {
		panic(err)
	}
	for _, s := range catalog.Stations {
		fmt.Printf("station %s bw %s power %.1f dB\n",
			builder.FloatToHz(s.FreqCenter, 3, false), builder.FloatToHz(s.Bw, 1, false), s.PowerDB)
	}
}
