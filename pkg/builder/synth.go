package builder

import "github.com/joeydtaylor/sdrhunter/pkg/internal/synth"

type (
	SyntheticSpec = synth.Spec
	SyntheticTone = synth.Tone
)

// SyntheticFMBand is a 50 sweep by 1024 bin capture starting at 88 MHz with
// one 25 kHz tone 20 dB above the floor.
func SyntheticFMBand(seed uint64, noiseAmp float64) synth.Spec {
	return synth.FMBand(seed, noiseAmp)
}
