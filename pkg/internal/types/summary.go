package types

// SummaryKind names one of the column-wise reductions of a waterfall.
type SummaryKind string

const (
	KindAvg   SummaryKind = "avg"
	KindMin   SummaryKind = "min"
	KindMax   SummaryKind = "max"
	KindDelta SummaryKind = "delta"
)

// SummaryKinds lists every reduction in the order they are computed.
var SummaryKinds = []SummaryKind{KindAvg, KindMin, KindMax, KindDelta}

// PeakStats describes the signal evaluated only at a set of detected extrema.
type PeakStats struct {
	Idx  []int   // Column indices of the retained extrema, ascending.
	Mean float64 // Mean of the unsmoothed signal at Idx.
	Std  float64 // Population standard deviation of the unsmoothed signal at Idx.
}

// Peaks groups the valley (below mean) and peak (above mean) statistics of a signal.
type Peaks struct {
	Min PeakStats
	Max PeakStats
}

// Summary is one aggregated signal over time plus its scalar and peak statistics.
type Summary struct {
	Kind     SummaryKind
	Signal   []float64 // Aggregated value per frequency bin.
	Smoothed []float64 // Signal after the flat moving-average window, same length.
	Min      float64
	Max      float64
	Mean     float64
	Std      float64
	Peak     Peaks
}

// NoiseFloor returns the noise floor estimate: valley mean minus valley spread.
func (s Summary) NoiseFloor() float64 {
	return s.Peak.Min.Mean - s.Peak.Min.Std
}

// StrongSignal returns the strong-signal estimate: peak mean plus peak spread.
func (s Summary) StrongSignal() float64 {
	return s.Peak.Max.Mean + s.Peak.Max.Std
}

// SummaryBundle carries the four summaries computed from the same waterfall,
// together with that waterfall's frequency axis.
type SummaryBundle struct {
	FreqStart float64
	FreqEnd   float64
	FreqStep  float64

	Avg   Summary
	Min   Summary
	Max   Summary
	Delta Summary
}

// Get returns the summary for kind.
func (b SummaryBundle) Get(kind SummaryKind) (Summary, bool) {
	switch kind {
	case KindAvg:
		return b.Avg, true
	case KindMin:
		return b.Min, true
	case KindMax:
		return b.Max, true
	case KindDelta:
		return b.Delta, true
	default:
		return Summary{}, false
	}
}

// All returns the summaries in SummaryKinds order.
func (b SummaryBundle) All() []Summary {
	return []Summary{b.Avg, b.Min, b.Max, b.Delta}
}
