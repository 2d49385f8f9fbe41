package types

import (
	"fmt"
	"math"
)

// ScanParams bounds what the detector accepts as a station.
type ScanParams struct {
	Name          string  // Scan name, used for labelling only.
	BwMin         float64 // Minimum accepted bandwidth in Hz.
	BwMax         float64 // Maximum accepted bandwidth in Hz.
	MinRelativeDB float64 // Minimum peak height above the triggering threshold, in dB.
}

// Validate checks numeric sanity of the parameters.
func (p ScanParams) Validate() error {
	switch {
	case math.IsNaN(p.BwMin) || math.IsNaN(p.BwMax) || math.IsNaN(p.MinRelativeDB):
		return &InvalidScanParamsError{Reason: "parameters must be numbers"}
	case p.BwMin <= 0:
		return &InvalidScanParamsError{Reason: fmt.Sprintf("bwmin must be positive, got %g", p.BwMin)}
	case p.BwMax <= 0:
		return &InvalidScanParamsError{Reason: fmt.Sprintf("bwmax must be positive, got %g", p.BwMax)}
	case p.BwMin > p.BwMax:
		return &InvalidScanParamsError{Reason: fmt.Sprintf("bwmin %g exceeds bwmax %g", p.BwMin, p.BwMax)}
	case p.MinRelativeDB < 0:
		return &InvalidScanParamsError{Reason: fmt.Sprintf("minrelativedb must not be negative, got %g", p.MinRelativeDB)}
	}
	return nil
}
