package meter

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger attaches loggers to the Meter.
func (m *Meter) ConnectLogger(loggers ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
}

// NotifyLoggers sends a message to all attached loggers at or below level.
func (m *Meter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	m.loggersLock.Lock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.loggersLock.Unlock()

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
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
