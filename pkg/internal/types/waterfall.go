package types

import "gonum.org/v1/gonum/mat"

// Waterfall is the time-by-frequency power matrix assembled from one capture file.
// Rows follow first-seen timestamp order and columns follow ascending frequency.
// A Waterfall is never mutated once the assembler returns it.
type Waterfall struct {
	FreqStart float64    // Lower bound of the first bin, in Hz.
	FreqEnd   float64    // Upper bound of the last bin, in Hz.
	FreqStep  float64    // Bin width in Hz, uniform across the waterfall.
	Times     []string   // Row timestamp keys ("date time"), verbatim from the capture.
	Power     *mat.Dense // Power readings in dB; nil when the capture held no rows.
}

// Rows returns the number of sweeps in the waterfall.
func (w *Waterfall) Rows() int {
	if w == nil || w.Power == nil {
		return 0
	}
	r, _ := w.Power.Dims()
	return r
}

// Cols returns the number of frequency bins in the waterfall.
func (w *Waterfall) Cols() int {
	if w == nil || w.Power == nil {
		return 0
	}
	_, c := w.Power.Dims()
	return c
}

// FreqAt returns the frequency of the lower edge of bin col.
func (w *Waterfall) FreqAt(col int) float64 {
	return w.FreqStart + float64(col)*w.FreqStep
}

// Column copies the readings of bin j across every sweep.
func (w *Waterfall) Column(j int) []float64 {
	return mat.Col(nil, j, w.Power)
}

// Row copies the readings of sweep i across every bin.
func (w *Waterfall) Row(i int) []float64 {
	return mat.Row(nil, i, w.Power)
}
