package types

import "time"

// Sensor receives telemetry callbacks from pipeline components. Callbacks run inline
// on the component's goroutine and must not block.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	InvokeOnCaptureAssembled(c ComponentMetadata, capture string, w *Waterfall)
	InvokeOnCaptureAnalyzed(c ComponentMetadata, capture string, err error)
	InvokeOnSummaryComputed(c ComponentMetadata, capture string, s Summary)
	InvokeOnThreshold(c ComponentMetadata, level int, threshold float64)
	InvokeOnStationAccepted(c ComponentMetadata, s Station, threshold float64)
	InvokeOnStationDuplicate(c ComponentMetadata, candidate Station, existing Station)
	InvokeOnCandidateRejected(c ComponentMetadata, candidate Station, threshold float64, reason string)
	InvokeOnCatalogSaved(c ComponentMetadata, store string, size int)
	InvokeOnStageComplete(c ComponentMetadata, stage string, d time.Duration)
	InvokeOnError(c ComponentMetadata, err error)
}
