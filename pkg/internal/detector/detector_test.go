package detector_test

import (
	"errors"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/internallogger"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/sensor"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetector_ReportsDecisions(t *testing.T) {
	var (
		levels     []float64
		accepted   []types.Station
		duplicates int
		rejected   = map[string]int{}
	)
	s := sensor.NewSensor(
		sensor.WithOnThresholdFunc(func(c types.ComponentMetadata, level int, th float64) {
			levels = append(levels, th)
		}),
		sensor.WithOnStationAcceptedFunc(func(c types.ComponentMetadata, st types.Station, th float64) {
			if c.Type != "DETECTOR" {
				t.Errorf("unexpected component metadata %+v", c)
			}
			accepted = append(accepted, st)
		}),
		sensor.WithOnStationDuplicateFunc(func(c types.ComponentMetadata, candidate, existing types.Station) {
			duplicates++
		}),
		sensor.WithOnCandidateRejectedFunc(func(c types.ComponentMetadata, candidate types.Station, th float64, reason string) {
			rejected[reason]++
		}),
	)
	core, obs := observer.New(zapcore.DebugLevel)
	d := detector.NewDetector(fmParams,
		detector.WithSensor(s),
		detector.WithLogger(internallogger.NewLogger(internallogger.LoggerWithCore(core))),
	)

	// A 10 kHz block at 40..50 and a 40 kHz block at 120..160 sampled at 1 kHz.
	signal := block(200, 40, 50)
	for i := 120; i <= 160; i++ {
		signal[i] = -60
	}
	bundle := types.SummaryBundle{FreqStart: 1e6, FreqStep: 1000, Max: ladder(signal)}

	out, err := d.Detect(types.Catalog{}, bundle)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(levels) != detector.ThresholdLevels {
		t.Fatalf("expected %d thresholds, got %v", detector.ThresholdLevels, levels)
	}
	if out.Len() != 2 || len(accepted) != 2 {
		t.Fatalf("expected two accepted stations, got catalog %+v accepted %+v", out.Stations, accepted)
	}
	if duplicates != 2*(detector.ThresholdLevels-1) {
		t.Fatalf("expected %d duplicates, got %d", 2*(detector.ThresholdLevels-1), duplicates)
	}
	if len(rejected) != 0 {
		t.Fatalf("expected no rejections, got %v", rejected)
	}
	if obs.FilterMessage("detection complete").Len() != 1 {
		t.Fatalf("expected detection complete log entry")
	}

	tight := detector.NewDetector(types.ScanParams{Name: "tight", BwMin: 1e3, BwMax: 20e3, MinRelativeDB: 6}, detector.WithSensor(s))
	if _, err := tight.Detect(types.Catalog{}, bundle); err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if rejected[types.CandidateRejectedBw] != detector.ThresholdLevels {
		t.Fatalf("expected the 40 kHz block rejected at every level, got %v", rejected)
	}
}

func TestDetector_InvalidParamsReported(t *testing.T) {
	var seen error
	s := sensor.NewSensor(sensor.WithOnErrorFunc(func(c types.ComponentMetadata, err error) { seen = err }))
	d := detector.NewDetector(types.ScanParams{BwMin: 2, BwMax: 1}, detector.WithSensor(s), detector.WithName("broken"))

	if d.GetComponentMetadata().Name != "broken" || d.Params().BwMin != 2 {
		t.Fatalf("unexpected detector identity %+v", d.GetComponentMetadata())
	}
	if _, err := d.Detect(types.Catalog{}, types.SummaryBundle{}); !errors.Is(err, types.ErrInvalidScanParams) {
		t.Fatalf("expected ErrInvalidScanParams, got %v", err)
	}
	if !errors.Is(seen, types.ErrInvalidScanParams) {
		t.Fatalf("expected sensor to observe error, got %v", seen)
	}
}
