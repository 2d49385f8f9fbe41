package builder

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/sensor"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type ComponentMetadata = types.ComponentMetadata

type Sensor = types.Sensor

// NewSensor creates a callback registry that components report telemetry to.
func NewSensor(options ...types.Option[*sensor.Sensor]) *sensor.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[*sensor.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter forwards sensor callbacks to meters.
func SensorWithMeter(meter ...types.Meter) types.Option[*sensor.Sensor] {
	return sensor.WithMeter(meter...)
}

// SensorWithName sets the sensor's component name.
func SensorWithName(name string) types.Option[*sensor.Sensor] {
	return sensor.WithName(name)
}

// SensorWithOnCaptureAssembledFunc registers a callback for the OnCaptureAssembled event.
func SensorWithOnCaptureAssembledFunc(callback ...func(c ComponentMetadata, capture string, w *types.Waterfall)) types.Option[*sensor.Sensor] {
	return sensor.WithOnCaptureAssembledFunc(callback...)
}

// SensorWithOnCaptureAnalyzedFunc registers a callback for the OnCaptureAnalyzed event.
func SensorWithOnCaptureAnalyzedFunc(callback ...func(c ComponentMetadata, capture string, err error)) types.Option[*sensor.Sensor] {
	return sensor.WithOnCaptureAnalyzedFunc(callback...)
}

// SensorWithOnSummaryComputedFunc registers a callback for the OnSummaryComputed event.
func SensorWithOnSummaryComputedFunc(callback ...func(c ComponentMetadata, capture string, summary types.Summary)) types.Option[*sensor.Sensor] {
	return sensor.WithOnSummaryComputedFunc(callback...)
}

// SensorWithOnThresholdFunc registers a callback for the OnThreshold event.
func SensorWithOnThresholdFunc(callback ...func(c ComponentMetadata, level int, threshold float64)) types.Option[*sensor.Sensor] {
	return sensor.WithOnThresholdFunc(callback...)
}

// SensorWithOnStationAcceptedFunc registers a callback for the OnStationAccepted event.
func SensorWithOnStationAcceptedFunc(callback ...func(c ComponentMetadata, station types.Station, threshold float64)) types.Option[*sensor.Sensor] {
	return sensor.WithOnStationAcceptedFunc(callback...)
}

// SensorWithOnStationDuplicateFunc registers a callback for the OnStationDuplicate event.
func SensorWithOnStationDuplicateFunc(callback ...func(c ComponentMetadata, candidate, existing types.Station)) types.Option[*sensor.Sensor] {
	return sensor.WithOnStationDuplicateFunc(callback...)
}

// SensorWithOnCandidateRejectedFunc registers a callback for the OnCandidateRejected event.
func SensorWithOnCandidateRejectedFunc(callback ...func(c ComponentMetadata, candidate types.Station, threshold float64, reason string)) types.Option[*sensor.Sensor] {
	return sensor.WithOnCandidateRejectedFunc(callback...)
}

// SensorWithOnCatalogSavedFunc registers a callback for the OnCatalogSaved event.
func SensorWithOnCatalogSavedFunc(callback ...func(c ComponentMetadata, store string, size int)) types.Option[*sensor.Sensor] {
	return sensor.WithOnCatalogSavedFunc(callback...)
}

// SensorWithOnStageCompleteFunc registers a callback for the OnStageComplete event.
func SensorWithOnStageCompleteFunc(callback ...func(c ComponentMetadata, stage string, d time.Duration)) types.Option[*sensor.Sensor] {
	return sensor.WithOnStageCompleteFunc(callback...)
}

// SensorWithOnErrorFunc registers a callback for the OnError event.
func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[*sensor.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}
