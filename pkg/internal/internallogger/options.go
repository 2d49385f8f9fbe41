package internallogger

import (
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel configures the logger to use the specified log level.
// Unknown level names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *loggerSettings) {
		s.level = ConvertLevel(ParseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment switches to console output with colored levels.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *loggerSettings) {
		s.development = dev
		if dev {
			s.encoding = "console"
		}
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *loggerSettings) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			s.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *loggerSettings) {
		s.fields[logschema.FieldSchema] = schema
	}
}

// LoggerWithOutput replaces the default stderr writer of the base core.
func LoggerWithOutput(ws zapcore.WriteSyncer) LoggerOption {
	return func(s *loggerSettings) {
		s.output = ws
	}
}

// LoggerWithCore replaces the base core entirely. Level filtering is then
// the core's responsibility.
func LoggerWithCore(core zapcore.Core) LoggerOption {
	return func(s *loggerSettings) {
		s.core = core
	}
}

// LoggerWithCaller toggles caller annotation.
func LoggerWithCaller(on bool) LoggerOption {
	return func(s *loggerSettings) {
		s.callerOn = on
	}
}

// ZapAdapterWithCallerSkip sets the number of caller frames to skip.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(s *loggerSettings) {
		s.callerSkip += skip
	}
}
