package utils

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Unit tables keyed by suffix. Lookups are case-insensitive.
var (
	HzUnits  = map[string]float64{"G": 1e9, "M": 1e6, "k": 1e3}
	SecUnits = map[string]float64{"h": 3600, "m": 60, "s": 1}
)

// HzToFloat parses "1.5M", "200k" or a bare number into hertz.
func HzToFloat(s string) (float64, error) {
	return unitToFloat(s, HzUnits)
}

// SecToFloat parses "5m", "1h", "30s" or a bare number into seconds.
func SecToFloat(s string) (float64, error) {
	return unitToFloat(s, SecUnits)
}

// HzValue accepts either a number or a unit string, as decoded from YAML or JSON.
func HzValue(v interface{}) (float64, error) {
	return unitValue(v, HzUnits)
}

// SecValue is HzValue for durations in seconds.
func SecValue(v interface{}) (float64, error) {
	return unitValue(v, SecUnits)
}

// FloatToHz renders v with the largest unit not exceeding it, e.g. 1.5e6 -> "1.50M".
// With zeroFill the number is left-padded with zeros to eight characters.
func FloatToHz(v float64, decimals int, zeroFill bool) string {
	return floatToUnit(v, HzUnits, decimals, zeroFill)
}

// FloatToSec renders a duration in seconds, e.g. 120 -> "2.00m".
func FloatToSec(v float64) string {
	return floatToUnit(v, SecUnits, 2, false)
}

func unitToFloat(s string, units map[string]float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	suffix := s[len(s)-1:]
	mult, ok := lookupUnit(suffix, units)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in %q", suffix, s)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in %q: %w", s, err)
	}
	return f * mult, nil
}

func unitValue(v interface{}, units map[string]float64) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		return unitToFloat(x, units)
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func lookupUnit(suffix string, units map[string]float64) (float64, bool) {
	if m, ok := units[suffix]; ok {
		return m, true
	}
	for k, m := range units {
		if strings.EqualFold(k, suffix) {
			return m, true
		}
	}
	return 0, false
}

func floatToUnit(v float64, units map[string]float64, decimals int, zeroFill bool) string {
	keys := make([]string, 0, len(units))
	for k := range units {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return units[keys[i]] > units[keys[j]] })

	for _, k := range keys {
		if v >= units[k] {
			if zeroFill {
				return fmt.Sprintf("%0*.*f%s", 8, decimals, v/units[k], k)
			}
			return fmt.Sprintf("%.*f%s", decimals, v/units[k], k)
		}
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
