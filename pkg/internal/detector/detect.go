// Package detector segments the smoothed max signal at a ladder of thresholds
// between the noise floor and the strong-signal level, and merges the resulting
// stations into a catalog.
package detector

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// ThresholdLevels is the number of thresholds scanned between the noise floor
// and the strong-signal level, inclusive.
const ThresholdLevels = 5

// hooks receives per-candidate decisions. A nil hooks is allowed.
type hooks interface {
	threshold(level int, th float64)
	accepted(s types.Station, th float64)
	duplicate(candidate, existing types.Station)
	rejected(candidate types.Station, th float64, reason string)
}

// Detect merges the stations found in the bundle's max summary into catalog and
// returns the new catalog. catalog is not modified.
func Detect(params types.ScanParams, catalog types.Catalog, bundle types.SummaryBundle) (types.Catalog, error) {
	return detect(params, catalog, bundle.Max, bundle.FreqStart, bundle.FreqStep, nil)
}

// DetectSummary is Detect for a max summary whose frequency axis is given explicitly.
func DetectSummary(params types.ScanParams, catalog types.Catalog, maxSummary types.Summary, freqStart, freqStep float64) (types.Catalog, error) {
	return detect(params, catalog, maxSummary, freqStart, freqStep, nil)
}

// Thresholds returns the ascending threshold ladder for a max summary.
func Thresholds(maxSummary types.Summary) []float64 {
	return floats.Span(make([]float64, ThresholdLevels), maxSummary.NoiseFloor(), maxSummary.StrongSignal())
}

func detect(params types.ScanParams, catalog types.Catalog, maxSummary types.Summary, freqStart, step float64, h hooks) (types.Catalog, error) {
	if err := params.Validate(); err != nil {
		return catalog, err
	}
	if len(maxSummary.Signal) == 0 {
		return catalog, &types.EmptySignalError{Reason: "max summary has no signal"}
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return catalog, fmt.Errorf("detector: invalid frequency step %g", step)
	}

	smoothed := maxSummary.Smoothed
	if len(smoothed) != len(maxSummary.Signal) {
		var err error
		if smoothed, err = aggregator.Smooth(maxSummary.Signal, aggregator.SmoothWindow); err != nil {
			return catalog, err
		}
	}

	limitMin := maxSummary.NoiseFloor()
	out := catalog.Clone()
	for level, th := range Thresholds(maxSummary) {
		if h != nil {
			h.threshold(level, th)
		}
		scanThreshold(params, &out, smoothed, th, limitMin, freqStart, step, h)
	}
	return out, nil
}

// scanThreshold walks the trace once. Leading samples above th are skipped until
// the trace first dips below it, and a segment still open at the end is dropped.
func scanThreshold(params types.ScanParams, out *types.Catalog, smoothed []float64, th, limitMin, freqStart, step float64, h hooks) {
	var (
		seen   bool
		inSeg  bool
		start  int
		runMax float64
	)
	for i, v := range smoothed {
		above := v > th
		if !seen {
			if !above {
				seen = true
			}
			continue
		}
		switch {
		case above && !inSeg:
			inSeg, start, runMax = true, i, v
		case above && inSeg:
			if v > runMax {
				runMax = v
			}
		case !above && inSeg:
			inSeg = false
			steps := (i - 1) - start
			candidate := types.Station{
				FreqCenter: freqStart + float64(start+steps/2)*step,
				Bw:         float64(steps) * step,
				PowerDB:    runMax,
				RelativeDB: runMax - limitMin,
			}
			consider(params, out, candidate, th, h)
		}
	}
}

func consider(params types.ScanParams, out *types.Catalog, candidate types.Station, th float64, h hooks) {
	if candidate.Bw < params.BwMin || candidate.Bw > params.BwMax {
		if h != nil {
			h.rejected(candidate, th, types.CandidateRejectedBw)
		}
		return
	}
	if !(candidate.PowerDB-th > params.MinRelativeDB) {
		if h != nil {
			h.rejected(candidate, th, types.CandidateRejectedRelative)
		}
		return
	}
	if existing, ok := out.Covering(candidate.FreqCenter, candidate.Bw); ok {
		if h != nil {
			h.duplicate(candidate, existing)
		}
		return
	}
	out.Stations = append(out.Stations, candidate)
	out.Sort()
	if h != nil {
		h.accepted(candidate, th)
	}
}
