package pipeline

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger registers loggers.
func (r *Runner) ConnectLogger(loggers ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			r.loggers = append(r.loggers, l)
		}
	}
}

// ConnectSensor registers sensors.
func (r *Runner) ConnectSensor(sensors ...types.Sensor) {
	r.sensorsLock.Lock()
	defer r.sensorsLock.Unlock()
	for _, s := range sensors {
		if s != nil {
			r.sensors = append(r.sensors, s)
		}
	}
}

func (r *Runner) snapshotSensors() []types.Sensor {
	r.sensorsLock.Lock()
	defer r.sensorsLock.Unlock()
	return append([]types.Sensor(nil), r.sensors...)
}

// NotifyLoggers sends a log entry to every connected logger at or below level.
func (r *Runner) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	r.loggersLock.Lock()
	loggers := append([]types.Logger(nil), r.loggers...)
	r.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil {
			continue
		}
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
