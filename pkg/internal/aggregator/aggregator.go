package aggregator

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// Aggregator wraps Summarize with logging and sensor notifications.
type Aggregator struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewAggregator constructs an Aggregator with optional configuration.
func NewAggregator(options ...types.Option[*Aggregator]) *Aggregator {
	a := &Aggregator{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "AGGREGATOR",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// WithLogger attaches loggers to the Aggregator.
func WithLogger(logger ...types.Logger) types.Option[*Aggregator] {
	return func(a *Aggregator) { a.ConnectLogger(logger...) }
}

// WithSensor attaches sensors to the Aggregator.
func WithSensor(sensor ...types.Sensor) types.Option[*Aggregator] {
	return func(a *Aggregator) { a.ConnectSensor(sensor...) }
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[*Aggregator] {
	return func(a *Aggregator) { a.componentMetadata.Name = name }
}

// ConnectLogger registers loggers.
func (a *Aggregator) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor registers sensors.
func (a *Aggregator) ConnectSensor(sensors ...types.Sensor) {
	a.sensorsLock.Lock()
	defer a.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}

// GetComponentMetadata returns the aggregator's identity.
func (a *Aggregator) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// Summarize computes the summary bundle of the capture's waterfall.
func (a *Aggregator) Summarize(capture string, w *types.Waterfall) (types.SummaryBundle, error) {
	start := time.Now()
	bundle, err := Summarize(w)

	a.sensorsLock.Lock()
	sensors := append([]types.Sensor(nil), a.sensors...)
	a.sensorsLock.Unlock()

	if err != nil {
		a.notifyLoggers(types.ErrorLevel, "summary failed",
			logschema.FieldComponent, a.componentMetadata,
			logschema.FieldEvent, "Summarize",
			logschema.FieldResult, logschema.ResultFailure,
			logschema.FieldCapture, capture,
			logschema.FieldError, err,
		)
		for _, s := range sensors {
			s.InvokeOnError(a.componentMetadata, err)
		}
		return bundle, err
	}

	for _, summary := range bundle.All() {
		a.notifyLoggers(types.DebugLevel, "summary computed",
			logschema.FieldComponent, a.componentMetadata,
			logschema.FieldEvent, "Summarize",
			logschema.FieldResult, logschema.ResultSuccess,
			logschema.FieldCapture, capture,
			logschema.FieldKind, string(summary.Kind),
			"mean", summary.Mean,
			"std", summary.Std,
			"noise_floor", summary.NoiseFloor(),
			"strong_signal", summary.StrongSignal(),
		)
		for _, s := range sensors {
			s.InvokeOnSummaryComputed(a.componentMetadata, capture, summary)
		}
	}
	for _, s := range sensors {
		s.InvokeOnStageComplete(a.componentMetadata, "summarize", time.Since(start))
	}
	return bundle, nil
}

func (a *Aggregator) notifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	a.loggersLock.Lock()
	loggers := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()
	for _, logger := range loggers {
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
