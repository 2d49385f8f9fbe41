package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "sdrhunter-sensor-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	capture := filepath.Join(dir, "fm.csv")
	f, err := os.Create(capture)
	if err != nil {
		panic(err)
	}
	if err := builder.SyntheticFMBand(42, 1.0).WriteCapture(f); err != nil {
		panic(err)
	}
	f.Close()

	// Set the Pushgateway URL to push run metrics when the run ends.
	meter := builder.NewMeter(builder.MeterWithName("fm"), builder.MeterWithGrouping("site", "rooftop"))

	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithOnCaptureAssembledFunc(func(_ builder.ComponentMetadata, capture string, w *builder.Waterfall) {
			fmt.Printf("[sensor] assembled %s: %d sweeps x %d bins\n", capture, w.Rows(), w.Cols())
		}),
		builder.SensorWithOnThresholdFunc(func(_ builder.ComponentMetadata, level int, threshold float64) {
			fmt.Printf("[sensor] threshold %d at %.2f dB\n", level, threshold)
		}),
		builder.SensorWithOnStationAcceptedFunc(func(_ builder.ComponentMetadata, s builder.Station, threshold float64) {
			fmt.Printf("[sensor] accepted %s above %.2f dB\n", builder.FloatToHz(s.FreqCenter, 3, false), threshold)
		}),
		builder.SensorWithOnCandidateRejectedFunc(func(_ builder.ComponentMetadata, s builder.Station, _ float64, reason string) {
			fmt.Printf("[sensor] rejected %s: %s\n", builder.FloatToHz(s.FreqCenter, 3, false), reason)
		}),
		builder.SensorWithOnStageCompleteFunc(func(_ builder.ComponentMetadata, stage string, d time.Duration) {
			fmt.Printf("[sensor] %s took %s\n", stage, d)
		}),
	)

	runner := builder.NewRunner(
		builder.NewDetector(builder.ScanParams{Name: "fm", BwMin: 3e3, BwMax: 50e3, MinRelativeDB: 6}, builder.DetectorWithSensor(sensor)),
		builder.NewFileStore(filepath.Join(dir, "scanresult.json"), builder.StoreWithSensor(sensor)),
		builder.RunnerWithAssembler(builder.NewAssembler(builder.AssemblerWithSensor(sensor))),
		builder.RunnerWithAggregator(builder.NewAggregator(builder.AggregatorWithSensor(sensor))),
		builder.RunnerWithSensor(sensor),
		builder.RunnerWithMeter(meter),
	)
	if _, err := runner.Run(ctx, capture); err != nil {
		panic(err)
	}

	families, err := meter.Registry().Gather()
	if err != nil {
		panic(err)
	}
	for _, mf := range families {
		fmt.Printf("[meter] %s: %d series\n", mf.GetName(), len(mf.GetMetric()))
	}
}
