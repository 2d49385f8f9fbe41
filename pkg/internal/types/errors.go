package types

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMalformedCapture  = errors.New("malformed capture")
	ErrInconsistentGrid  = errors.New("inconsistent grid")
	ErrEmptySignal       = errors.New("empty signal")
	ErrNoExtrema         = errors.New("no extrema")
	ErrInvalidScanParams = errors.New("invalid scan parameters")
)

// MalformedCaptureError reports a capture line that could not be parsed.
type MalformedCaptureError struct {
	Line   int // 1-based line number in the capture.
	Reason string
	Err    error
}

func (e *MalformedCaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed capture line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed capture line %d: %s", e.Line, e.Reason)
}

func (e *MalformedCaptureError) Is(target error) bool { return target == ErrMalformedCapture }
func (e *MalformedCaptureError) Unwrap() error        { return e.Err }

// InconsistentGridError reports sub-ranges that do not tile the waterfall uniformly.
type InconsistentGridError struct {
	Reason string
}

func (e *InconsistentGridError) Error() string {
	return "inconsistent grid: " + e.Reason
}

func (e *InconsistentGridError) Is(target error) bool { return target == ErrInconsistentGrid }

// EmptySignalError reports a waterfall with nothing to aggregate.
type EmptySignalError struct {
	Reason string
}

func (e *EmptySignalError) Error() string {
	return "empty signal: " + e.Reason
}

func (e *EmptySignalError) Is(target error) bool { return target == ErrEmptySignal }

// NoExtremaError reports that no local extrema survived the mean filter.
type NoExtremaError struct {
	Kind SummaryKind
	Side string // "min" or "max"
}

func (e *NoExtremaError) Error() string {
	return fmt.Sprintf("no %s extrema in %s signal", e.Side, e.Kind)
}

func (e *NoExtremaError) Is(target error) bool { return target == ErrNoExtrema }

// InvalidScanParamsError reports scan parameters that fail numeric sanity checks.
type InvalidScanParamsError struct {
	Reason string
}

func (e *InvalidScanParamsError) Error() string {
	return "invalid scan parameters: " + e.Reason
}

func (e *InvalidScanParamsError) Is(target error) bool { return target == ErrInvalidScanParams }
