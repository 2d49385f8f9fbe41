package builder

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/meter"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type Meter = types.Meter

// Metric names re-exported from the internal types package.
const (
	MetricCapturesTotal         = types.MetricCapturesTotal
	MetricStationsDetectedTotal = types.MetricStationsDetectedTotal
	MetricCandidatesTotal       = types.MetricCandidatesTotal
	MetricCatalogSize           = types.MetricCatalogSize
	MetricNoiseFloorDB          = types.MetricNoiseFloorDB
	MetricStageDurationSeconds  = types.MetricStageDurationSeconds
)

// NewMeter creates a Prometheus backed run meter.
func NewMeter(options ...types.Option[*meter.Meter]) *meter.Meter {
	return meter.NewMeter(options...)
}

// MeterWithLogger attaches loggers to the Meter.
func MeterWithLogger(l ...types.Logger) types.Option[*meter.Meter] {
	return meter.WithLogger(l...)
}

// MeterWithName sets the meter's component name.
func MeterWithName(name string) types.Option[*meter.Meter] {
	return meter.WithName(name)
}

// MeterWithPushgateway enables pushing to a Prometheus Pushgateway.
func MeterWithPushgateway(url, job string) types.Option[*meter.Meter] {
	return meter.WithPushgateway(url, job)
}

// MeterWithGrouping adds a grouping label to pushed metrics.
func MeterWithGrouping(name, value string) types.Option[*meter.Meter] {
	return meter.WithGrouping(name, value)
}
