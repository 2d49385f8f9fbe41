// Package sensor provides a callback registry that pipeline components report
// telemetry through. Connected meters are updated from the same callbacks.
package sensor

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// Sensor provides callback hooks for component telemetry.
type Sensor struct {
	componentMetadata types.ComponentMetadata

	OnCaptureAssembled  []func(types.ComponentMetadata, string, *types.Waterfall)
	OnCaptureAnalyzed   []func(types.ComponentMetadata, string, error)
	OnSummaryComputed   []func(types.ComponentMetadata, string, types.Summary)
	OnThreshold         []func(types.ComponentMetadata, int, float64)
	OnStationAccepted   []func(types.ComponentMetadata, types.Station, float64)
	OnStationDuplicate  []func(types.ComponentMetadata, types.Station, types.Station)
	OnCandidateRejected []func(types.ComponentMetadata, types.Station, float64, string)
	OnCatalogSaved      []func(types.ComponentMetadata, string, int)
	OnStageComplete     []func(types.ComponentMetadata, string, time.Duration)
	OnError             []func(types.ComponentMetadata, error)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration. Meter forwarding
// callbacks are registered ahead of user callbacks.
func NewSensor(options ...types.Option[*Sensor]) *Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "SENSOR",
		},
	}

	s.decorateMeterCallbacks()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}
