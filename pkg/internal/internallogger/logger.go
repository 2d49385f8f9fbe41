package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the construction settings of a ZapLoggerAdapter.
type LoggerOption func(*loggerSettings)

type loggerSettings struct {
	level       zapcore.Level
	development bool
	callerSkip  int
	callerOn    bool
	encoding    string
	output      zapcore.WriteSyncer
	core        zapcore.Core
	fields      map[string]interface{}
}

// ZapLoggerAdapter implements types.Logger on top of zap. The base core is
// always present; sinks added at runtime are teed alongside it.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	baseCore    zapcore.Core
	encConfig   zapcore.EncoderConfig
	callerDepth int
	callerOn    bool
	baseFields  []zap.Field
	sinks       map[string]sinkEntry
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	settings := loggerSettings{
		level:      zapcore.InfoLevel,
		callerSkip: 2,
		callerOn:   true,
		encoding:   "json",
		fields:     map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
	}
	for _, option := range options {
		option(&settings)
	}

	atomicLevel := zap.NewAtomicLevelAt(settings.level)
	encConfig := standardEncoderConfig()
	if settings.development {
		encConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	baseCore := settings.core
	if baseCore == nil {
		out := settings.output
		if out == nil {
			out = zapcore.Lock(os.Stderr)
		}
		baseCore = zapcore.NewCore(newEncoder(settings.encoding, encConfig), out, atomicLevel)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: atomicLevel,
		baseCore:    baseCore,
		encConfig:   encConfig,
		callerDepth: settings.callerSkip,
		callerOn:    settings.callerOn,
		baseFields:  fieldsFromMap(settings.fields),
		sinks:       make(map[string]sinkEntry),
	}
	z.rebuildLoggerLocked()
	return z
}

// Zap exposes the underlying zap logger for callers that need it directly.
func (z *ZapLoggerAdapter) Zap() *zap.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logger
}

func newEncoder(encoding string, cfg zapcore.EncoderConfig) zapcore.Encoder {
	if encoding == "console" {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}
