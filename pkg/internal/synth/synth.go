// Package synth generates deterministic synthetic sweeps: uniform noise around a
// flat floor with optional narrowband tones. It backs tests, benchmarks and the
// CLI's demo capture writer.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"gonum.org/v1/gonum/mat"
)

// LCG is a 64-bit linear congruential generator. It is stable across Go
// releases, unlike math/rand sequences.
type LCG struct {
	state uint64
}

// NewLCG seeds a generator.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next returns the next value in [0, 1).
func (g *LCG) Next() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return float64(g.state>>11) / (1 << 53)
}

// Tone adds GainDB to Width bins starting at StartCol in every sweep.
type Tone struct {
	StartCol int
	Width    int
	GainDB   float64
}

// Spec describes a synthetic sweep.
type Spec struct {
	Rows      int
	Cols      int
	FreqStart float64
	FreqStep  float64
	NoiseDB   float64 // Floor level.
	NoiseAmp  float64 // Readings fall uniformly within NoiseDB ± NoiseAmp.
	Seed      uint64
	Tones     []Tone
	Hops      int       // Sub-ranges per sweep when written as a capture; 0 means 1.
	StartTime time.Time // Timestamp of the first sweep; zero means 2014-08-17 00:00:00 UTC.
	Interval  time.Duration
}

// Matrix returns the readings row-major, rows by cols.
func (s Spec) Matrix() []float64 {
	g := NewLCG(s.Seed)
	data := make([]float64, s.Rows*s.Cols)
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			v := s.NoiseDB + (g.Next()-0.5)*2*s.NoiseAmp
			for _, t := range s.Tones {
				if c >= t.StartCol && c < t.StartCol+t.Width {
					v += t.GainDB
				}
			}
			data[r*s.Cols+c] = v
		}
	}
	return data
}

// Waterfall builds the waterfall directly, without going through CSV.
func (s Spec) Waterfall() *types.Waterfall {
	times := make([]string, s.Rows)
	for r := range times {
		times[r] = s.timestamp(r)
	}
	return &types.Waterfall{
		FreqStart: s.FreqStart,
		FreqEnd:   s.FreqStart + float64(s.Cols)*s.FreqStep,
		FreqStep:  s.FreqStep,
		Times:     times,
		Power:     mat.NewDense(s.Rows, s.Cols, s.Matrix()),
	}
}

// WriteCapture writes the sweep in rtl_power CSV form, one line per sub-range.
func (s Spec) WriteCapture(w io.Writer) error {
	hops := s.Hops
	if hops <= 0 {
		hops = 1
	}
	if s.Cols%hops != 0 {
		return fmt.Errorf("synth: %d columns do not split into %d hops", s.Cols, hops)
	}
	per := s.Cols / hops
	data := s.Matrix()

	bw := bufio.NewWriter(w)
	for r := 0; r < s.Rows; r++ {
		ts := s.startTime().Add(time.Duration(r) * s.interval())
		date, clock := ts.Format("2006-01-02"), ts.Format("15:04:05")
		for h := 0; h < hops; h++ {
			lo := s.FreqStart + float64(h*per)*s.FreqStep
			hi := s.FreqStart + float64((h+1)*per)*s.FreqStep
			fmt.Fprintf(bw, "%s, %s, %s, %s, %s, %d", date, clock, ftoa(lo), ftoa(hi), ftoa(s.FreqStep), per)
			for c := h * per; c < (h+1)*per; c++ {
				bw.WriteString(", ")
				bw.WriteString(ftoa(data[r*s.Cols+c]))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// ToneCenter returns the frequency at the middle of tone t.
func (s Spec) ToneCenter(t Tone) float64 {
	return s.FreqStart + (float64(t.StartCol)+float64(t.Width-1)/2)*s.FreqStep
}

func (s Spec) startTime() time.Time {
	if s.StartTime.IsZero() {
		return time.Date(2014, 8, 17, 0, 0, 0, 0, time.UTC)
	}
	return s.StartTime
}

func (s Spec) interval() time.Duration {
	if s.Interval <= 0 {
		return time.Second
	}
	return s.Interval
}

func (s Spec) timestamp(r int) string {
	ts := s.startTime().Add(time.Duration(r) * s.interval())
	return ts.Format("2006-01-02") + " " + ts.Format("15:04:05")
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FMBand is the 50 sweep by 1024 bin fixture with one 8-bin tone 20 dB above a
// -90 dB floor at bins 500..507.
func FMBand(seed uint64, noiseAmp float64) Spec {
	return Spec{
		Rows:      50,
		Cols:      1024,
		FreqStart: 88e6,
		FreqStep:  3125,
		NoiseDB:   -90,
		NoiseAmp:  noiseAmp,
		Seed:      seed,
		Tones:     []Tone{{StartCol: 500, Width: 8, GainDB: 20}},
		Hops:      4,
	}
}
