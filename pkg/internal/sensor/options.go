package sensor

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// WithLogger creates an option to add loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter creates an option to forward sensor callbacks to meters.
func WithMeter(meter ...types.Meter) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithName sets the sensor's component name.
func WithName(name string) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.componentMetadata.Name = name
	}
}

// WithOnCaptureAssembledFunc registers callbacks for assembled captures.
func WithOnCaptureAssembledFunc(callback ...func(c types.ComponentMetadata, capture string, w *types.Waterfall)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnCaptureAssembled(callback...)
	}
}

// WithOnCaptureAnalyzedFunc registers callbacks for per-capture outcomes.
func WithOnCaptureAnalyzedFunc(callback ...func(c types.ComponentMetadata, capture string, err error)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnCaptureAnalyzed(callback...)
	}
}

// WithOnSummaryComputedFunc registers callbacks for computed summaries.
func WithOnSummaryComputedFunc(callback ...func(c types.ComponentMetadata, capture string, summary types.Summary)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnSummaryComputed(callback...)
	}
}

// WithOnThresholdFunc registers callbacks for detector threshold levels.
func WithOnThresholdFunc(callback ...func(c types.ComponentMetadata, level int, threshold float64)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnThreshold(callback...)
	}
}

// WithOnStationAcceptedFunc registers callbacks for accepted stations.
func WithOnStationAcceptedFunc(callback ...func(c types.ComponentMetadata, station types.Station, threshold float64)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnStationAccepted(callback...)
	}
}

// WithOnStationDuplicateFunc registers callbacks for deduplicated candidates.
func WithOnStationDuplicateFunc(callback ...func(c types.ComponentMetadata, candidate, existing types.Station)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnStationDuplicate(callback...)
	}
}

// WithOnCandidateRejectedFunc registers callbacks for rejected candidates.
func WithOnCandidateRejectedFunc(callback ...func(c types.ComponentMetadata, candidate types.Station, threshold float64, reason string)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnCandidateRejected(callback...)
	}
}

// WithOnCatalogSavedFunc registers callbacks for catalog saves.
func WithOnCatalogSavedFunc(callback ...func(c types.ComponentMetadata, store string, size int)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnCatalogSaved(callback...)
	}
}

// WithOnStageCompleteFunc registers callbacks for stage timings.
func WithOnStageCompleteFunc(callback ...func(c types.ComponentMetadata, stage string, d time.Duration)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnStageComplete(callback...)
	}
}

// WithOnErrorFunc registers callbacks for component errors.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[*Sensor] {
	return func(s *Sensor) {
		s.RegisterOnError(callback...)
	}
}
