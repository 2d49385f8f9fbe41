package builder

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

// Map applies a function to each element in the slice.
func Map[T any, R any](elems []T, f func(T) R) []R {
	return utils.Map[T, R](elems, f)
}

// Filter returns a new slice holding only the elements of elems that satisfy f().
func Filter[T any](elems []T, f func(T) bool) []T {
	return utils.Filter[T](elems, f)
}

// Contains reports whether element is present in slice.
func Contains[T comparable](slice []T, element T) bool {
	return utils.Contains(slice, element)
}

// HzToFloat parses "1.5M", "200k" or a bare number into hertz.
func HzToFloat(s string) (float64, error) {
	return utils.HzToFloat(s)
}

// SecToFloat parses "5m", "1h", "30s" or a bare number into seconds.
func SecToFloat(s string) (float64, error) {
	return utils.SecToFloat(s)
}

// FloatToHz renders a frequency with its largest unit, e.g. 1.5e6 -> "1.50M".
func FloatToHz(v float64, decimals int, zeroFill bool) string {
	return utils.FloatToHz(v, decimals, zeroFill)
}

// FloatToSec renders a duration in seconds with its largest unit.
func FloatToSec(v float64) string {
	return utils.FloatToSec(v)
}
