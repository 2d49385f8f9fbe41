package detector

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// Detector runs detection for one scan configuration and reports each candidate
// decision to its loggers and sensors.
type Detector struct {
	componentMetadata types.ComponentMetadata
	params            types.ScanParams

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewDetector constructs a Detector for params.
func NewDetector(params types.ScanParams, options ...types.Option[*Detector]) *Detector {
	d := &Detector{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "DETECTOR",
			Name: params.Name,
		},
		params: params,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// WithLogger attaches loggers to the Detector.
func WithLogger(logger ...types.Logger) types.Option[*Detector] {
	return func(d *Detector) { d.ConnectLogger(logger...) }
}

// WithSensor attaches sensors to the Detector.
func WithSensor(sensor ...types.Sensor) types.Option[*Detector] {
	return func(d *Detector) { d.ConnectSensor(sensor...) }
}

// WithName overrides the component name, which defaults to the scan name.
func WithName(name string) types.Option[*Detector] {
	return func(d *Detector) { d.componentMetadata.Name = name }
}

// ConnectLogger registers loggers.
func (d *Detector) ConnectLogger(loggers ...types.Logger) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			d.loggers = append(d.loggers, l)
		}
	}
}

// ConnectSensor registers sensors.
func (d *Detector) ConnectSensor(sensors ...types.Sensor) {
	d.sensorsLock.Lock()
	defer d.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			d.sensors = append(d.sensors, s)
		}
	}
}

// GetComponentMetadata returns the detector's identity.
func (d *Detector) GetComponentMetadata() types.ComponentMetadata {
	return d.componentMetadata
}

// Params returns the scan parameters the detector was built with.
func (d *Detector) Params() types.ScanParams {
	return d.params
}

// Detect merges the stations found in bundle into catalog.
func (d *Detector) Detect(catalog types.Catalog, bundle types.SummaryBundle) (types.Catalog, error) {
	start := time.Now()
	r := &reporter{d: d, sensors: d.snapshotSensors()}

	out, err := detect(d.params, catalog, bundle.Max, bundle.FreqStart, bundle.FreqStep, r)
	if err != nil {
		d.notifyLoggers(types.ErrorLevel, "detection failed",
			logschema.FieldComponent, d.componentMetadata,
			logschema.FieldEvent, "Detect",
			logschema.FieldResult, logschema.ResultFailure,
			logschema.FieldScan, d.params.Name,
			logschema.FieldError, err,
		)
		for _, s := range r.sensors {
			s.InvokeOnError(d.componentMetadata, err)
		}
		return out, err
	}

	d.notifyLoggers(types.InfoLevel, "detection complete",
		logschema.FieldComponent, d.componentMetadata,
		logschema.FieldEvent, "Detect",
		logschema.FieldResult, logschema.ResultSuccess,
		logschema.FieldScan, d.params.Name,
		"accepted", r.accepts,
		"duplicates", r.duplicates,
		"rejected", r.rejects,
		"catalog_size", out.Len(),
	)
	for _, s := range r.sensors {
		s.InvokeOnStageComplete(d.componentMetadata, "detect", time.Since(start))
	}
	return out, nil
}

func (d *Detector) snapshotSensors() []types.Sensor {
	d.sensorsLock.Lock()
	defer d.sensorsLock.Unlock()
	return append([]types.Sensor(nil), d.sensors...)
}

func (d *Detector) notifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	d.loggersLock.Lock()
	loggers := append([]types.Logger(nil), d.loggers...)
	d.loggersLock.Unlock()
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

// reporter forwards candidate decisions from a single Detect call.
type reporter struct {
	d       *Detector
	sensors []types.Sensor

	accepts, duplicates, rejects int
}

func (r *reporter) threshold(level int, th float64) {
	r.d.notifyLoggers(types.DebugLevel, "scanning threshold",
		logschema.FieldComponent, r.d.componentMetadata,
		logschema.FieldEvent, "Threshold",
		"level", level,
		logschema.FieldThreshold, th,
	)
	for _, s := range r.sensors {
		s.InvokeOnThreshold(r.d.componentMetadata, level, th)
	}
}

func (r *reporter) accepted(st types.Station, th float64) {
	r.accepts++
	r.d.notifyLoggers(types.DebugLevel, "station accepted",
		logschema.FieldComponent, r.d.componentMetadata,
		logschema.FieldEvent, "StationAccepted",
		logschema.FieldFrequency, st.FreqCenter,
		logschema.FieldBandwidth, st.Bw,
		logschema.FieldThreshold, th,
		"powerdb", st.PowerDB,
		"relativedb", st.RelativeDB,
	)
	for _, s := range r.sensors {
		s.InvokeOnStationAccepted(r.d.componentMetadata, st, th)
	}
}

func (r *reporter) duplicate(candidate, existing types.Station) {
	r.duplicates++
	for _, s := range r.sensors {
		s.InvokeOnStationDuplicate(r.d.componentMetadata, candidate, existing)
	}
}

func (r *reporter) rejected(candidate types.Station, th float64, reason string) {
	r.rejects++
	for _, s := range r.sensors {
		s.InvokeOnCandidateRejected(r.d.componentMetadata, candidate, th, reason)
	}
}
