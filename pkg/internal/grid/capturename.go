package grid

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

// CaptureName describes the sweep settings encoded in a capture file name:
// <start>Mhz-<end>Mhz-<binsize>-<interval>i-<quitafter>q.csv
type CaptureName struct {
	Start     float64 // Hz
	End       float64 // Hz
	Binsize   float64 // Hz
	Interval  float64 // seconds
	QuitAfter float64 // seconds
}

// String formats the capture file name, including the .csv extension.
func (c CaptureName) String() string {
	return fmt.Sprintf("%sMhz-%sMhz-%s-%si-%sq.csv",
		formatNumber(c.Start/1e6),
		formatNumber(c.End/1e6),
		formatNumber(c.Binsize),
		formatNumber(c.Interval),
		formatNumber(c.QuitAfter),
	)
}

// Label is a short human readable frequency span such as "88.00M-108.00M".
func (c CaptureName) Label() string {
	return utils.FloatToHz(c.Start, 2, false) + "-" + utils.FloatToHz(c.End, 2, false)
}

// ParseCaptureName parses a capture file name or path. Frequencies may carry a
// unit before the Mhz suffix ("88.000000MMhz"), and the binsize and interval may
// carry units ("3k", "10si").
func ParseCaptureName(path string) (CaptureName, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(name, "-")
	if len(parts) != 5 {
		return CaptureName{}, fmt.Errorf("capture name %q: expected 5 dash separated parts, got %d", base, len(parts))
	}

	var (
		c   CaptureName
		err error
	)
	if c.Start, err = parseMhz(parts[0]); err != nil {
		return CaptureName{}, fmt.Errorf("capture name %q: start: %w", base, err)
	}
	if c.End, err = parseMhz(parts[1]); err != nil {
		return CaptureName{}, fmt.Errorf("capture name %q: end: %w", base, err)
	}
	if c.Binsize, err = utils.HzToFloat(parts[2]); err != nil {
		return CaptureName{}, fmt.Errorf("capture name %q: binsize: %w", base, err)
	}
	interval, ok := cutSuffixFold(parts[3], "i")
	if !ok {
		return CaptureName{}, fmt.Errorf("capture name %q: interval lacks i suffix", base)
	}
	if c.Interval, err = utils.SecToFloat(interval); err != nil {
		return CaptureName{}, fmt.Errorf("capture name %q: interval: %w", base, err)
	}
	quit, ok := cutSuffixFold(parts[4], "q")
	if !ok {
		return CaptureName{}, fmt.Errorf("capture name %q: quit-after lacks q suffix", base)
	}
	if c.QuitAfter, err = utils.SecToFloat(quit); err != nil {
		return CaptureName{}, fmt.Errorf("capture name %q: quit-after: %w", base, err)
	}
	if c.End <= c.Start {
		return CaptureName{}, fmt.Errorf("capture name %q: end %g is not above start %g", base, c.End, c.Start)
	}
	return c, nil
}

func parseMhz(s string) (float64, error) {
	v, ok := cutSuffixFold(s, "mhz")
	if !ok {
		return 0, fmt.Errorf("%q lacks Mhz suffix", s)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f * 1e6, nil
	}
	return utils.HzToFloat(v)
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) < len(suffix) || !strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
