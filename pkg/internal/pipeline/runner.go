// Package pipeline runs batches of captures through assembly, summarizing and
// detection against one catalog, then persists and announces the result.
package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/export"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// DefaultWorkers bounds concurrent capture analysis when no limit is set.
const DefaultWorkers = 4

// Runner owns the components of one scan's batch run.
type Runner struct {
	componentMetadata types.ComponentMetadata

	assembler  *grid.Assembler
	aggregator *aggregator.Aggregator
	detector   *detector.Detector
	store      types.CatalogStore
	publisher  types.StationPublisher
	exporter   *export.Exporter
	meter      types.Meter

	workers      int
	alwaysSave   bool
	skipExisting bool
	newRunID     func() string

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewRunner builds a runner detecting with det and persisting to store.
func NewRunner(det *detector.Detector, store types.CatalogStore, options ...types.Option[*Runner]) *Runner {
	r := &Runner{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "RUNNER",
		},
		detector:  det,
		store:     store,
		publisher: kafkaclient.NoopPublisher{},
		workers:   DefaultWorkers,
		newRunID:  uuid.NewString,
	}
	if det != nil {
		r.componentMetadata.Name = det.Params().Name
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.assembler == nil {
		r.assembler = grid.NewAssembler()
	}
	if r.aggregator == nil {
		r.aggregator = aggregator.NewAggregator()
	}
	return r
}

// GetComponentMetadata returns the runner's identity.
func (r *Runner) GetComponentMetadata() types.ComponentMetadata {
	return r.componentMetadata
}

// Scan is the name of the scan the runner detects for.
func (r *Runner) Scan() string {
	if r.detector == nil {
		return ""
	}
	return r.detector.Params().Name
}
