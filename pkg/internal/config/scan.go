package config

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

// Scan keys as written in the configuration file.
const (
	KeyName           = "name"
	KeyFreqStart      = "freq_start"
	KeyFreqEnd        = "freq_end"
	KeyWindows        = "windows"
	KeySplitWindows   = "splitwindows"
	KeyInterval       = "interval"
	KeyNbSamplesLines = "nbsamples_lines"
	KeyNbSamplesFreqs = "nbsamples_freqs"
	KeyBwMin          = "bwmin"
	KeyBwMax          = "bwmax"
	KeyMinRelativeDB  = "minrelativedb"
)

// ScanConfig is a named sweep with its derived capture geometry.
type ScanConfig struct {
	Name           string  `yaml:"name"`
	FreqStart      float64 `yaml:"freq_start"`
	FreqEnd        float64 `yaml:"freq_end"` // extended to a whole number of windows
	Delta          float64 `yaml:"delta"`
	Windows        float64 `yaml:"windows"`
	SplitWindows   bool    `yaml:"splitwindows"`
	NbStep         int     `yaml:"nbstep"`
	Interval       float64 `yaml:"interval"`
	NbSamplesLines int     `yaml:"nbsamples_lines"`
	NbSamplesFreqs int     `yaml:"nbsamples_freqs"`
	QuitAfter      float64 `yaml:"quitafter"`
	Binsize        float64 `yaml:"binsize"`
	BwMin          float64 `yaml:"bwmin"`
	BwMax          float64 `yaml:"bwmax"`
	MinRelativeDB  float64 `yaml:"minrelativedb"`
}

// Params returns the detector parameters of the scan.
func (s ScanConfig) Params() types.ScanParams {
	return types.ScanParams{
		Name:          s.Name,
		BwMin:         s.BwMin,
		BwMax:         s.BwMax,
		MinRelativeDB: s.MinRelativeDB,
	}
}

// CaptureNames lists the capture files a sweep of this scan produces, one per
// window step. Split windows advance by half a window.
func (s ScanConfig) CaptureNames() []grid.CaptureName {
	step := s.Windows
	if s.SplitWindows {
		step = s.Windows / 2
	}
	names := make([]grid.CaptureName, 0, s.NbStep)
	for i := 0; i < s.NbStep; i++ {
		left := s.FreqStart + float64(i)*step
		names = append(names, grid.CaptureName{
			Start:     left,
			End:       left + s.Windows,
			Binsize:   s.Binsize,
			Interval:  s.Interval,
			QuitAfter: s.QuitAfter,
		})
	}
	return names
}

func resolveScan(fields map[string]interface{}) (ScanConfig, error) {
	for _, key := range []string{KeyName, KeyFreqStart, KeyFreqEnd} {
		if _, ok := fields[key]; !ok {
			return ScanConfig{}, fmt.Errorf("key %q required", key)
		}
	}

	var (
		s   ScanConfig
		err error
	)
	name, ok := fields[KeyName].(string)
	if !ok || name == "" {
		return ScanConfig{}, fmt.Errorf("%s must be a non-empty string", KeyName)
	}
	s.Name = name

	if s.FreqStart, err = hzField(fields, KeyFreqStart); err != nil {
		return ScanConfig{}, err
	}
	if s.FreqEnd, err = hzField(fields, KeyFreqEnd); err != nil {
		return ScanConfig{}, err
	}
	if s.FreqEnd <= s.FreqStart {
		return ScanConfig{}, fmt.Errorf("scan %s: freq_end %g is not above freq_start %g", name, s.FreqEnd, s.FreqStart)
	}
	s.Delta = s.FreqEnd - s.FreqStart

	s.Windows = s.Delta
	if _, ok := fields[KeyWindows]; ok {
		if s.Windows, err = hzField(fields, KeyWindows); err != nil {
			return ScanConfig{}, err
		}
		if s.Windows <= 0 {
			return ScanConfig{}, fmt.Errorf("scan %s: windows must be positive", name)
		}
	}

	s.Interval = DefaultInterval
	if _, ok := fields[KeyInterval]; ok {
		if s.Interval, err = utils.SecValue(fields[KeyInterval]); err != nil {
			return ScanConfig{}, fmt.Errorf("scan %s: %s: %w", name, KeyInterval, err)
		}
	}
	if s.NbSamplesLines, err = intField(fields, KeyNbSamplesLines, DefaultNbSamplesLine); err != nil {
		return ScanConfig{}, fmt.Errorf("scan %s: %w", name, err)
	}
	if s.NbSamplesFreqs, err = intField(fields, KeyNbSamplesFreqs, DefaultNbSamplesFreq); err != nil {
		return ScanConfig{}, fmt.Errorf("scan %s: %w", name, err)
	}
	if s.NbSamplesFreqs < 2 || bits.OnesCount(uint(s.NbSamplesFreqs)) != 1 {
		return ScanConfig{}, fmt.Errorf("scan %s: nbsamples_freqs %d must be a power of two", name, s.NbSamplesFreqs)
	}
	if v, ok := fields[KeySplitWindows]; ok {
		if s.SplitWindows, ok = v.(bool); !ok {
			return ScanConfig{}, fmt.Errorf("scan %s: %s must be a boolean", name, KeySplitWindows)
		}
	}

	for key, dst := range map[string]*float64{KeyBwMin: &s.BwMin, KeyBwMax: &s.BwMax} {
		if _, ok := fields[key]; ok {
			if *dst, err = hzField(fields, key); err != nil {
				return ScanConfig{}, err
			}
		}
	}
	if v, ok := fields[KeyMinRelativeDB]; ok {
		f, ok := toFloat(v)
		if !ok {
			return ScanConfig{}, fmt.Errorf("scan %s: %s must be a number", name, KeyMinRelativeDB)
		}
		s.MinRelativeDB = f
	}

	s.QuitAfter = s.Interval * float64(s.NbSamplesLines)
	s.Binsize = math.Ceil(s.Windows / float64(s.NbSamplesFreqs-1))

	if rem := math.Mod(s.Delta, s.Windows); rem != 0 {
		s.FreqEnd += s.Windows - rem
		s.Delta = s.FreqEnd - s.FreqStart
	}
	step := s.Windows
	if s.SplitWindows {
		step = s.Windows / 2
	}
	s.NbStep = int(math.Round(s.Delta / step))
	return s, nil
}

func hzField(fields map[string]interface{}, key string) (float64, error) {
	v, err := utils.HzValue(fields[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func intField(fields map[string]interface{}, key string, def int) (int, error) {
	v, ok := fields[key]
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(f), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
