// Package aggregator reduces a waterfall along time into per-bin signals and
// derives the noise-floor and peak statistics the detector thresholds on.
package aggregator

import (
	"fmt"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the avg, min, max and delta summaries of w. Any kind that
// cannot be summarized fails the whole bundle.
func Summarize(w *types.Waterfall) (types.SummaryBundle, error) {
	reduced, err := reduceAll(w)
	if err != nil {
		return types.SummaryBundle{}, err
	}
	b := types.SummaryBundle{FreqStart: w.FreqStart, FreqEnd: w.FreqEnd, FreqStep: w.FreqStep}
	for _, kind := range types.SummaryKinds {
		s, err := summarizeSignal(kind, reduced[kind])
		if err != nil {
			return types.SummaryBundle{}, err
		}
		switch kind {
		case types.KindAvg:
			b.Avg = s
		case types.KindMin:
			b.Min = s
		case types.KindMax:
			b.Max = s
		case types.KindDelta:
			b.Delta = s
		}
	}
	return b, nil
}

// SummarizeKind computes a single summary of w.
func SummarizeKind(w *types.Waterfall, kind types.SummaryKind) (types.Summary, error) {
	reduced, err := reduceAll(w)
	if err != nil {
		return types.Summary{}, err
	}
	signal, ok := reduced[kind]
	if !ok {
		return types.Summary{}, fmt.Errorf("unknown summary kind %q", kind)
	}
	return summarizeSignal(kind, signal)
}

// Reduce collapses w along time with the given kind.
func Reduce(w *types.Waterfall, kind types.SummaryKind) ([]float64, error) {
	reduced, err := reduceAll(w)
	if err != nil {
		return nil, err
	}
	signal, ok := reduced[kind]
	if !ok {
		return nil, fmt.Errorf("unknown summary kind %q", kind)
	}
	return signal, nil
}

func reduceAll(w *types.Waterfall) (map[types.SummaryKind][]float64, error) {
	rows, cols := w.Rows(), w.Cols()
	if rows == 0 || cols == 0 {
		return nil, &types.EmptySignalError{Reason: "waterfall has no readings"}
	}

	avg := make([]float64, cols)
	lo := make([]float64, cols)
	hi := make([]float64, cols)
	delta := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = w.Power.At(i, j)
		}
		avg[j] = stat.Mean(col, nil)
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
		delta[j] = hi[j] - lo[j]
	}
	return map[types.SummaryKind][]float64{
		types.KindAvg:   avg,
		types.KindMin:   lo,
		types.KindMax:   hi,
		types.KindDelta: delta,
	}, nil
}

func summarizeSignal(kind types.SummaryKind, signal []float64) (types.Summary, error) {
	mean, std := stat.PopMeanStdDev(signal, nil)
	smoothed, err := Smooth(signal, SmoothWindow)
	if err != nil {
		return types.Summary{}, err
	}

	s := types.Summary{
		Kind:     kind,
		Signal:   signal,
		Smoothed: smoothed,
		Min:      floats.Min(signal),
		Max:      floats.Max(signal),
		Mean:     mean,
		Std:      std,
	}

	minIdx := utils.Filter(LocalMinima(smoothed), func(i int) bool { return smoothed[i] < mean })
	maxIdx := utils.Filter(LocalMaxima(smoothed), func(i int) bool { return smoothed[i] > mean })
	if len(minIdx) == 0 {
		return types.Summary{}, &types.NoExtremaError{Kind: kind, Side: "min"}
	}
	if len(maxIdx) == 0 {
		return types.Summary{}, &types.NoExtremaError{Kind: kind, Side: "max"}
	}
	s.Peak.Min = peakStats(signal, minIdx)
	s.Peak.Max = peakStats(signal, maxIdx)
	return s, nil
}

func peakStats(signal []float64, idx []int) types.PeakStats {
	values := utils.Map(idx, func(i int) float64 { return signal[i] })
	mean, std := stat.PopMeanStdDev(values, nil)
	return types.PeakStats{Idx: idx, Mean: mean, Std: std}
}
