package aggregator

import (
	"fmt"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// SmoothWindow is the width of the flat moving average applied before extrema search.
const SmoothWindow = 10

// Smooth returns the flat moving average of signal over window samples. The
// signal is mirrored window-1 samples past each edge, the leading mirror
// skipping the first sample and the trailing mirror starting at the last one, and
// each output sample is the mean of the window centered on it, so the result has
// the same length as signal. Signals shorter than window cannot be mirrored.
func Smooth(signal []float64, window int) ([]float64, error) {
	n := len(signal)
	if window < 1 {
		return nil, fmt.Errorf("smoothing window must be positive, got %d", window)
	}
	if n < window {
		return nil, &types.EmptySignalError{Reason: fmt.Sprintf("signal of %d bins is shorter than the %d-bin smoothing window", n, window)}
	}
	if window == 1 {
		return append([]float64(nil), signal...), nil
	}

	pad := window - 1
	padded := make([]float64, 0, n+2*pad)
	for i := pad; i >= 1; i-- {
		padded = append(padded, signal[i])
	}
	padded = append(padded, signal...)
	for i := n - 1; i >= n-pad; i-- {
		padded = append(padded, signal[i])
	}

	// A valid convolution yields n+pad samples; the centered slice starts at pad/2.
	offset := pad / 2
	out := make([]float64, n)
	w := float64(window)
	for i := range out {
		k := i + offset
		out[i] = floats.Sum(padded[k:k+window]) / w
	}
	return out, nil
}
