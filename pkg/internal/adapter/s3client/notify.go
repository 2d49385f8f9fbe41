package s3client

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger attaches loggers for adapter events.
func (a *S3Client) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

func (a *S3Client) snapshotLoggers() []types.Logger {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()

	if len(a.loggers) == 0 {
		return nil
	}
	loggers := make([]types.Logger, len(a.loggers))
	copy(loggers, a.loggers)
	return loggers
}

// NotifyLoggers sends a message to all attached loggers at or below level.
func (a *S3Client) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range a.snapshotLoggers() {
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
