package pipeline

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/export"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// WithLogger attaches loggers to the Runner.
func WithLogger(logger ...types.Logger) types.Option[*Runner] {
	return func(r *Runner) { r.ConnectLogger(logger...) }
}

// WithSensor attaches sensors to the Runner.
func WithSensor(sensor ...types.Sensor) types.Option[*Runner] {
	return func(r *Runner) { r.ConnectSensor(sensor...) }
}

// WithName overrides the component name, which defaults to the scan name.
func WithName(name string) types.Option[*Runner] {
	return func(r *Runner) { r.componentMetadata.Name = name }
}

// WithAssembler replaces the default capture assembler.
func WithAssembler(a *grid.Assembler) types.Option[*Runner] {
	return func(r *Runner) {
		if a != nil {
			r.assembler = a
		}
	}
}

// WithAggregator replaces the default aggregator.
func WithAggregator(a *aggregator.Aggregator) types.Option[*Runner] {
	return func(r *Runner) {
		if a != nil {
			r.aggregator = a
		}
	}
}

// WithPublisher announces newly discovered stations through p.
func WithPublisher(p types.StationPublisher) types.Option[*Runner] {
	return func(r *Runner) {
		if p != nil {
			r.publisher = p
		}
	}
}

// WithExporter exports summaries and the saved catalog through e.
func WithExporter(e *export.Exporter) types.Option[*Runner] {
	return func(r *Runner) { r.exporter = e }
}

// WithMeter pushes m once the run finishes.
func WithMeter(m types.Meter) types.Option[*Runner] {
	return func(r *Runner) { r.meter = m }
}

// WithWorkers bounds how many captures are analyzed concurrently.
func WithWorkers(n int) types.Option[*Runner] {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithAlwaysSave saves the catalog even when no station was added.
func WithAlwaysSave(enabled bool) types.Option[*Runner] {
	return func(r *Runner) { r.alwaysSave = enabled }
}

// WithSkipExisting skips captures whose summary export already exists.
func WithSkipExisting(enabled bool) types.Option[*Runner] {
	return func(r *Runner) { r.skipExisting = enabled }
}

// WithRunIDFunc replaces the run identifier generator.
func WithRunIDFunc(fn func() string) types.Option[*Runner] {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}
