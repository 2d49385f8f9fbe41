// Package store persists the station catalog, either as a JSON file on local disk
// or as a single object in S3. Both stores replace the whole catalog on save.
package store

import (
	"sync"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// BackupSuffix marks copies of a previous catalog taken before it is replaced.
const BackupSuffix = ".backup"

// base carries the logging plumbing shared by both stores.
type base struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

func (b *base) connectLogger(loggers ...types.Logger) {
	b.loggersLock.Lock()
	defer b.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			b.loggers = append(b.loggers, l)
		}
	}
}

func (b *base) connectSensor(sensors ...types.Sensor) {
	b.sensorsLock.Lock()
	defer b.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			b.sensors = append(b.sensors, s)
		}
	}
}

func (b *base) snapshotSensors() []types.Sensor {
	b.sensorsLock.Lock()
	defer b.sensorsLock.Unlock()
	return append([]types.Sensor(nil), b.sensors...)
}

// NotifyLoggers fans a log entry out to every connected logger.
func (b *base) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	b.loggersLock.Lock()
	loggers := append([]types.Logger(nil), b.loggers...)
	b.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

// GetComponentMetadata returns the store's identity.
func (b *base) GetComponentMetadata() types.ComponentMetadata {
	return b.componentMetadata
}

func (b *base) saved(name string, size int) {
	for _, s := range b.snapshotSensors() {
		s.InvokeOnCatalogSaved(b.componentMetadata, name, size)
	}
}

func (b *base) failed(err error) {
	for _, s := range b.snapshotSensors() {
		s.InvokeOnError(b.componentMetadata, err)
	}
}
