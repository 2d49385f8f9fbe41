package aggregator_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

func ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func TestSmooth_PreservesLength(t *testing.T) {
	for _, n := range []int{10, 11, 64, 1024} {
		out, err := aggregator.Smooth(ramp(n), aggregator.SmoothWindow)
		if err != nil {
			t.Fatalf("Smooth(n=%d) error: %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("Smooth(n=%d) returned %d samples", n, len(out))
		}
	}
}

func TestSmooth_CenteredWindow(t *testing.T) {
	out, err := aggregator.Smooth(ramp(40), aggregator.SmoothWindow)
	if err != nil {
		t.Fatalf("Smooth error: %v", err)
	}
	// Interior samples average x[i-5..i+4].
	for i := 5; i < 35; i++ {
		if want := float64(i) - 0.5; math.Abs(out[i]-want) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
	// Monotone input stays monotone, so samples are not reordered.
	for i := 5; i < 35; i++ {
		if out[i+1] <= out[i] {
			t.Fatalf("smoothed ramp not increasing at %d: %v <= %v", i, out[i+1], out[i])
		}
	}
}

func TestSmooth_ReflectPadding(t *testing.T) {
	x := ramp(20)
	out, err := aggregator.Smooth(x, aggregator.SmoothWindow)
	if err != nil {
		t.Fatalf("Smooth error: %v", err)
	}
	// out[0] averages the mirrored x[5..1] and x[0..4].
	if want := (5.0 + 4 + 3 + 2 + 1 + 0 + 1 + 2 + 3 + 4) / 10; math.Abs(out[0]-want) > 1e-12 {
		t.Fatalf("out[0] = %v, want %v", out[0], want)
	}
	// out[19] averages x[14..19] and the trailing mirror x[19..16].
	if want := (14.0 + 15 + 16 + 17 + 18 + 19 + 19 + 18 + 17 + 16) / 10; math.Abs(out[19]-want) > 1e-12 {
		t.Fatalf("out[19] = %v, want %v", out[19], want)
	}
}

func TestSmooth_ConstantSignal(t *testing.T) {
	x := make([]float64, 32)
	for i := range x {
		x[i] = -90
	}
	out, err := aggregator.Smooth(x, aggregator.SmoothWindow)
	if err != nil {
		t.Fatalf("Smooth error: %v", err)
	}
	for i, v := range out {
		if math.Abs(v+90) > 1e-12 {
			t.Fatalf("out[%d] = %v, want -90", i, v)
		}
	}
}

func TestSmooth_ShortSignal(t *testing.T) {
	_, err := aggregator.Smooth(ramp(9), aggregator.SmoothWindow)
	if !errors.Is(err, types.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}
	if _, err := aggregator.Smooth(ramp(9), 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestLocalExtrema_Strict(t *testing.T) {
	x := []float64{0, 1, 0, 2, 2, 0, -1, 3, 3, -1}
	maxima := aggregator.LocalMaxima(x)
	if len(maxima) != 1 || maxima[0] != 1 {
		t.Fatalf("unexpected maxima %v", maxima)
	}
	minima := aggregator.LocalMinima(x)
	if len(minima) != 2 || minima[0] != 2 || minima[1] != 6 {
		t.Fatalf("unexpected minima %v", minima)
	}
	if got := aggregator.LocalMaxima([]float64{5, 1}); len(got) != 0 {
		t.Fatalf("boundaries must be excluded, got %v", got)
	}
}
