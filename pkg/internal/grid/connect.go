package grid

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger registers loggers for assembler output.
func (a *Assembler) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// ConnectSensor registers sensors notified after each assembled capture.
func (a *Assembler) ConnectSensor(sensors ...types.Sensor) {
	a.sensorsLock.Lock()
	defer a.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			a.sensors = append(a.sensors, s)
		}
	}
}

// GetComponentMetadata returns the assembler's identity.
func (a *Assembler) GetComponentMetadata() types.ComponentMetadata {
	return a.componentMetadata
}

// NotifyLoggers fans a log entry out to every connected logger.
func (a *Assembler) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
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

func (a *Assembler) snapshotSensors() []types.Sensor {
	a.sensorsLock.Lock()
	defer a.sensorsLock.Unlock()
	return append([]types.Sensor(nil), a.sensors...)
}
