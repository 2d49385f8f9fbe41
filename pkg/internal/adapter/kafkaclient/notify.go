package kafkaclient

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger attaches loggers for publish events.
func (c *KafkaClient) ConnectLogger(loggers ...types.Logger) {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			c.loggers = append(c.loggers, l)
		}
	}
}

// NotifyLoggers sends a message to all attached loggers at or below level.
func (c *KafkaClient) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	c.loggersLock.Lock()
	loggers := append([]types.Logger(nil), c.loggers...)
	c.loggersLock.Unlock()

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
