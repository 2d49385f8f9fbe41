package builder

import (
	"fmt"
	"strings"

	internalLogger "github.com/joeydtaylor/sdrhunter/pkg/internal/internallogger"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

type LoggerOption = internalLogger.LoggerOption

type Logger = types.Logger

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
)

func NewLogger(options ...internalLogger.LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// NewLoggerFromConfig builds a logger at level, switching to console output
// for format "console" and teeing to file when it is set.
func NewLoggerFromConfig(level, format, file string) (types.Logger, error) {
	opts := []LoggerOption{LoggerWithLevel(level)}
	if strings.EqualFold(format, "console") {
		opts = append(opts, LoggerWithDevelopment(true))
	}
	logger := internalLogger.NewLogger(opts...)
	if file != "" {
		err := logger.AddSink("file", types.SinkConfig{
			Type:   string(types.FileSink),
			Config: map[string]interface{}{"path": file},
		})
		if err != nil {
			return nil, fmt.Errorf("log file sink: %w", err)
		}
	}
	return logger, nil
}

// LoggerWithLevel configures the logger to use the specified log level
func LoggerWithLevel(levelStr string) LoggerOption {
	return internalLogger.LoggerWithLevel(levelStr)
}

// LoggerWithDevelopment enables or disables development mode
func LoggerWithDevelopment(dev bool) LoggerOption {
	return internalLogger.LoggerWithDevelopment(dev)
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return internalLogger.LoggerWithSchema(schema)
}

// Log schema constants for the standard sdrhunter log format.
const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

// LogLevel is exported from the internal types package.
type LogLevel = types.LogLevel

// Export log levels to be accessible under the builder package
const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
