package types

import (
	"context"
	"time"
)

// Metric names exported by the run meter.
const (
	MetricCapturesTotal         = "sdrhunter_captures_total"
	MetricStationsDetectedTotal = "sdrhunter_stations_detected_total"
	MetricCandidatesTotal       = "sdrhunter_candidates_total"
	MetricCatalogSize           = "sdrhunter_catalog_size"
	MetricNoiseFloorDB          = "sdrhunter_noise_floor_db"
	MetricStageDurationSeconds  = "sdrhunter_stage_duration_seconds"
)

// Label values used with the metrics above.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	CandidateAccepted         = "accepted"
	CandidateDuplicate        = "duplicate"
	CandidateRejectedBw       = "rejected_bandwidth"
	CandidateRejectedRelative = "rejected_relative_db"
)

// Meter records run metrics. Sensors forward their callbacks to connected meters.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	RecordCapture(capture string, err error)
	RecordNoiseFloor(capture string, db float64)
	RecordCandidate(outcome string)
	RecordCatalogSize(n int)
	RecordStage(stage string, d time.Duration)
	Push(ctx context.Context) error
}
