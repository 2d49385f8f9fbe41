// Package meter records run metrics in a Prometheus registry and optionally
// pushes them to a Pushgateway when the run ends.
package meter

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// DefaultJob is the Pushgateway job name.
const DefaultJob = "sdrhunter"

// Meter implements types.Meter over a private registry.
type Meter struct {
	componentMetadata types.ComponentMetadata

	registry         *prometheus.Registry
	captures         *prometheus.CounterVec
	stationsDetected prometheus.Counter
	candidates       *prometheus.CounterVec
	catalogSize      prometheus.Gauge
	noiseFloor       *prometheus.GaugeVec
	stageDuration    *prometheus.HistogramVec

	pushURL  string
	job      string
	grouping map[string]string

	loggers     []types.Logger
	loggersLock sync.Mutex
}

var _ types.Meter = (*Meter)(nil)

// NewMeter registers the run metrics in a fresh registry.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "METER",
		},
		registry: prometheus.NewRegistry(),
		captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: types.MetricCapturesTotal,
			Help: "Captures analyzed, by result.",
		}, []string{"result"}),
		stationsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: types.MetricStationsDetectedTotal,
			Help: "Stations added to the catalog.",
		}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: types.MetricCandidatesTotal,
			Help: "Detector candidates, by outcome.",
		}, []string{"outcome"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: types.MetricCatalogSize,
			Help: "Stations in the catalog after the last save.",
		}),
		noiseFloor: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: types.MetricNoiseFloorDB,
			Help: "Noise floor estimate of the max summary, in dB.",
		}, []string{"capture"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    types.MetricStageDurationSeconds,
			Help:    "Time spent per pipeline stage.",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		job:      DefaultJob,
		grouping: map[string]string{},
	}

	m.registry.MustRegister(
		m.captures,
		m.stationsDetected,
		m.candidates,
		m.catalogSize,
		m.noiseFloor,
		m.stageDuration,
	)

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// GetComponentMetadata returns the meter's identity.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	return m.componentMetadata
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Meter) Registry() *prometheus.Registry {
	return m.registry
}
