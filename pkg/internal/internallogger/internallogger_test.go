package internallogger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/internallogger"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel, got %v", got)
	}
}

func TestNewLogger_WithLevel(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	if got := logger.GetLevel(); got != types.DebugLevel {
		t.Fatalf("expected DebugLevel, got %v", got)
	}

	logger = internallogger.NewLogger(internallogger.LoggerWithLevel("unknown"))
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected InfoLevel on unknown level, got %v", got)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	if got := logger.GetLevel(); got != types.ErrorLevel {
		t.Fatalf("expected ErrorLevel, got %v", got)
	}
}

func TestLogger_JSONOutputUsesSchemaKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithOutput(zapcore.AddSync(&buf)),
		internallogger.LoggerWithFields(map[string]interface{}{"site": "rooftop"}),
	)

	logger.Info("capture assembled", logschema.FieldCapture, "88Mhz-108Mhz.csv", logschema.FieldResult, logschema.ResultSuccess)
	logger.Debug("suppressed at info")

	line := strings.TrimSpace(buf.String())
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("expected exactly one line, got %q", line)
	}
	var rec logschema.LogRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec[logschema.FieldMessage] != "capture assembled" {
		t.Fatalf("unexpected msg: %v", rec[logschema.FieldMessage])
	}
	if rec[logschema.FieldLevel] != "info" {
		t.Fatalf("unexpected level: %v", rec[logschema.FieldLevel])
	}
	if rec[logschema.FieldSchema] != logschema.SchemaID {
		t.Fatalf("unexpected schema: %v", rec[logschema.FieldSchema])
	}
	if rec["site"] != "rooftop" {
		t.Fatalf("expected base field site, got %v", rec["site"])
	}
	if rec[logschema.FieldCapture] != "88Mhz-108Mhz.csv" {
		t.Fatalf("unexpected capture: %v", rec[logschema.FieldCapture])
	}
	if _, ok := rec[logschema.FieldTimestamp]; !ok {
		t.Fatalf("expected timestamp key %q", logschema.FieldTimestamp)
	}
}

func TestLogger_SchemaOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithOutput(zapcore.AddSync(&buf)),
		internallogger.LoggerWithSchema("custom.v2"),
	)
	logger.Warn("override")

	var rec logschema.LogRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec[logschema.FieldSchema] != "custom.v2" {
		t.Fatalf("expected overridden schema, got %v", rec[logschema.FieldSchema])
	}
}

func TestLogger_AddRemoveListSinks(t *testing.T) {
	var base bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithLevel("debug"),
		internallogger.LoggerWithOutput(zapcore.AddSync(&base)),
	)

	path := filepath.Join(t.TempDir(), "logs", "app.log")

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file) error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if err := logger.AddSink("stdout", types.SinkConfig{Type: "stdout"}); err != nil {
		t.Fatalf("AddSink(stdout) error: %v", err)
	}

	sinks, err := logger.ListSinks()
	if err != nil {
		t.Fatalf("ListSinks error: %v", err)
	}
	if len(sinks) != 2 || sinks[0] != "file" || sinks[1] != "stdout" {
		t.Fatalf("unexpected sinks: %v", sinks)
	}

	logger.Info("to every sink")
	if err := logger.RemoveSink("file"); err != nil {
		t.Fatalf("RemoveSink error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to every sink") {
		t.Fatalf("expected file sink to receive entry, got %q", data)
	}
	if !strings.Contains(base.String(), "to every sink") {
		t.Fatalf("expected base output to receive entry")
	}

	if err := logger.RemoveSink("missing"); err == nil {
		t.Fatalf("expected error removing missing sink")
	}
}

func TestLogger_AddSinkInvalidConfig(t *testing.T) {
	logger := internallogger.NewLogger()

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{}}); err == nil {
		t.Fatalf("expected error for missing file path")
	}
	if err := logger.AddSink("network", types.SinkConfig{Type: "network"}); err == nil {
		t.Fatalf("expected error for unsupported sink type")
	}
}

func TestLogger_OptionsCoverage(t *testing.T) {
	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithDevelopment(true),
		internallogger.ZapAdapterWithCallerSkip(1),
		internallogger.LoggerWithOutput(zapcore.AddSync(&buf)),
	)
	logger.Info("options")
	if !strings.Contains(buf.String(), "options") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
}
