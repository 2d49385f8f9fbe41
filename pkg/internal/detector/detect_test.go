package detector_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/synth"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

var fmParams = types.ScanParams{Name: "fm", BwMin: 3e3, BwMax: 50e3, MinRelativeDB: 6}

// block returns a flat -95 dB trace of n samples with [from, to] raised to -60 dB.
func block(n, from, to int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = -95
		if i >= from && i <= to {
			x[i] = -60
		}
	}
	return x
}

// ladder is a max summary whose thresholds are -90, -85, -80, -75, -70.
func ladder(signal []float64) types.Summary {
	return types.Summary{
		Kind:     types.KindMax,
		Signal:   signal,
		Smoothed: signal,
		Peak: types.Peaks{
			Min: types.PeakStats{Mean: -90},
			Max: types.PeakStats{Mean: -70},
		},
	}
}

func name(s string) *string { return &s }

func TestDetect_SyntheticTone(t *testing.T) {
	for _, amp := range []float64{0.1, 0.5, 1.0, 2.0} {
		for _, seed := range []uint64{1, 2, 3, 7, 42, 99} {
			spec := synth.FMBand(seed, amp)
			bundle, err := aggregator.Summarize(spec.Waterfall())
			if err != nil {
				t.Fatalf("seed %d amp %v: Summarize error: %v", seed, amp, err)
			}
			out, err := detector.Detect(fmParams, types.Catalog{}, bundle)
			if err != nil {
				t.Fatalf("seed %d amp %v: Detect error: %v", seed, amp, err)
			}
			if out.Len() != 1 {
				t.Fatalf("seed %d amp %v: expected exactly one station, got %+v", seed, amp, out.Stations)
			}

			st := out.Stations[0]
			center := spec.ToneCenter(spec.Tones[0])
			if math.Abs(st.FreqCenter-center) > spec.FreqStep {
				t.Fatalf("seed %d amp %v: center %v more than one bin from %v", seed, amp, st.FreqCenter, center)
			}
			// The segment is scanned on the smoothed trace, where the 8-bin tone
			// becomes a ramp of about 8+SmoothWindow-1 bins. The lowest threshold sits
			// just above the noise floor and cuts that ramp 12 bins wide; every higher
			// threshold lands inside it and is deduplicated.
			if want := 12 * spec.FreqStep; math.Abs(st.Bw-want) > 1e-6 {
				t.Fatalf("seed %d amp %v: bandwidth %v, want %v (12 bins)", seed, amp, st.Bw, want)
			}
			if st.RelativeDB != st.PowerDB-bundle.Max.NoiseFloor() {
				t.Fatalf("seed %d amp %v: relativedb %v not measured from the noise floor", seed, amp, st.RelativeDB)
			}
			if st.Name != nil {
				t.Fatalf("seed %d amp %v: detector must not name stations", seed, amp)
			}

			again, err := detector.Detect(fmParams, out, bundle)
			if err != nil {
				t.Fatalf("seed %d amp %v: second Detect error: %v", seed, amp, err)
			}
			if again.Len() != 1 {
				t.Fatalf("seed %d amp %v: second pass added stations: %+v", seed, amp, again.Stations)
			}
		}
	}
}

func TestDetect_SyntheticToneThroughCapture(t *testing.T) {
	spec := synth.FMBand(1, 1.0)
	var buf bytes.Buffer
	if err := spec.WriteCapture(&buf); err != nil {
		t.Fatalf("WriteCapture error: %v", err)
	}
	w, err := grid.Assemble(&buf)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if w.Rows() != 50 || w.Cols() != 1024 || w.FreqStep != 3125 || w.FreqStart != 88e6 {
		t.Fatalf("unexpected waterfall %dx%d start=%v step=%v", w.Rows(), w.Cols(), w.FreqStart, w.FreqStep)
	}

	fromCapture, err := aggregator.Summarize(w)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	direct, err := aggregator.Summarize(spec.Waterfall())
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	a, err := detector.Detect(fmParams, types.Catalog{}, fromCapture)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	b, err := detector.Detect(fmParams, types.Catalog{}, direct)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("capture and direct waterfalls disagree: %+v vs %+v", a, b)
	}
}

func TestDetect_Idempotent(t *testing.T) {
	bundle, err := aggregator.Summarize(synth.FMBand(7, 1.0).Waterfall())
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	once, err := detector.Detect(fmParams, types.Catalog{}, bundle)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	twice, err := detector.Detect(fmParams, once, bundle)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second run changed the catalog: %+v vs %+v", once, twice)
	}
}

func TestDetect_DoesNotMutateInput(t *testing.T) {
	in := types.Catalog{Stations: []types.Station{{FreqCenter: 200e6, Bw: 10e3, Name: name("keep")}}}
	snapshot := in.Clone()

	out, err := detector.DetectSummary(fmParams, in, ladder(block(100, 40, 50)), 105e6-45000, 1000)
	if err != nil {
		t.Fatalf("DetectSummary error: %v", err)
	}
	if !reflect.DeepEqual(in, snapshot) {
		t.Fatalf("input catalog mutated: %+v", in)
	}
	if out.Len() != 2 {
		t.Fatalf("expected existing plus one new station, got %+v", out.Stations)
	}
	for _, st := range out.Stations {
		if st.FreqCenter == 200e6 && (st.Name == nil || *st.Name != "keep") {
			t.Fatalf("existing station lost its name")
		}
	}
}

func TestDetect_Segment(t *testing.T) {
	out, err := detector.DetectSummary(fmParams, types.Catalog{}, ladder(block(100, 40, 50)), 105e6-45000, 1000)
	if err != nil {
		t.Fatalf("DetectSummary error: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected one station, got %+v", out.Stations)
	}
	want := types.Station{FreqCenter: 105e6, Bw: 10e3, PowerDB: -60, RelativeDB: 30}
	if !reflect.DeepEqual(out.Stations[0], want) {
		t.Fatalf("got %+v, want %+v", out.Stations[0], want)
	}
}

func TestDetect_Dedup(t *testing.T) {
	summary := ladder(block(100, 40, 50))
	start := 105e6 - 45000.0

	cases := []struct {
		name     string
		existing float64
		inserted bool
	}{
		{name: "distant station", existing: 100e6, inserted: true},
		{name: "center inside existing window", existing: 105.005e6, inserted: false},
		{name: "center on window edge", existing: 105.01e6, inserted: false},
		{name: "just outside window", existing: 105.0101e6, inserted: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := types.Catalog{Stations: []types.Station{{FreqCenter: tc.existing, Bw: 10e3}}}
			out, err := detector.DetectSummary(fmParams, in, summary, start, 1000)
			if err != nil {
				t.Fatalf("DetectSummary error: %v", err)
			}
			inserted := out.Len() == 2
			if inserted != tc.inserted {
				t.Fatalf("inserted=%v, want %v: %+v", inserted, tc.inserted, out.Stations)
			}
		})
	}
}

func TestDetect_SortedByLowerEdge(t *testing.T) {
	signal := block(200, 140, 150)
	for i := 20; i <= 30; i++ {
		signal[i] = -60
	}
	out, err := detector.DetectSummary(fmParams, types.Catalog{Stations: []types.Station{{FreqCenter: 1e6 + 100e3, Bw: 5e3}}}, ladder(signal), 1e6, 1000)
	if err != nil {
		t.Fatalf("DetectSummary error: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("expected three stations, got %+v", out.Stations)
	}
	for i := 1; i < out.Len(); i++ {
		if out.Stations[i-1].SortKey() > out.Stations[i].SortKey() {
			t.Fatalf("catalog not sorted: %+v", out.Stations)
		}
	}
}

func TestDetect_BoundaryRuns(t *testing.T) {
	// Leading run above every threshold is skipped; trailing run never closes.
	signal := block(100, 0, 10)
	for i := 85; i < 100; i++ {
		signal[i] = -60
	}
	out, err := detector.DetectSummary(fmParams, types.Catalog{}, ladder(signal), 1e6, 1000)
	if err != nil {
		t.Fatalf("DetectSummary error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stations from boundary runs, got %+v", out.Stations)
	}
}

func TestDetect_Rejections(t *testing.T) {
	summary := ladder(block(100, 40, 50))

	narrow := types.ScanParams{BwMin: 1e3, BwMax: 5e3, MinRelativeDB: 6}
	if out, err := detector.DetectSummary(narrow, types.Catalog{}, summary, 1e6, 1000); err != nil || out.Len() != 0 {
		t.Fatalf("expected bandwidth rejection, got %+v, %v", out.Stations, err)
	}

	// -60 sits 30 dB over the lowest threshold and 10 dB over the highest.
	strict := types.ScanParams{BwMin: 1e3, BwMax: 50e3, MinRelativeDB: 30}
	if out, err := detector.DetectSummary(strict, types.Catalog{}, summary, 1e6, 1000); err != nil || out.Len() != 0 {
		t.Fatalf("expected relative level rejection, got %+v, %v", out.Stations, err)
	}
}

func TestDetect_InvalidParams(t *testing.T) {
	in := types.Catalog{Stations: []types.Station{{FreqCenter: 1e6, Bw: 1e3}}}
	bundle := types.SummaryBundle{FreqStart: 1e6, FreqStep: 1000, Max: ladder(block(100, 40, 50))}

	for _, p := range []types.ScanParams{
		{BwMin: 10e3, BwMax: 5e3, MinRelativeDB: 6},
		{BwMin: 0, BwMax: 5e3, MinRelativeDB: 6},
		{BwMin: 1e3, BwMax: -1, MinRelativeDB: 6},
		{BwMin: 1e3, BwMax: 5e3, MinRelativeDB: -1},
		{BwMin: 1e3, BwMax: 5e3, MinRelativeDB: math.NaN()},
	} {
		out, err := detector.Detect(p, in, bundle)
		if !errors.Is(err, types.ErrInvalidScanParams) {
			t.Fatalf("params %+v: expected ErrInvalidScanParams, got %v", p, err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Fatalf("params %+v: catalog changed on failure", p)
		}
	}
}

func TestDetect_EmptySummary(t *testing.T) {
	if _, err := detector.Detect(fmParams, types.Catalog{}, types.SummaryBundle{FreqStep: 1}); !errors.Is(err, types.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}
	if _, err := detector.DetectSummary(fmParams, types.Catalog{}, ladder(block(100, 40, 50)), 1e6, 0); err == nil {
		t.Fatalf("expected error for zero step")
	}
}

func TestThresholds_Ascending(t *testing.T) {
	got := detector.Thresholds(ladder(nil))
	want := []float64{-90, -85, -80, -75, -70}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("thresholds %v, want %v", got, want)
	}
}
