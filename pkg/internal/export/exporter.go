package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

const (
	summarySuffix = ".summary.parquet"
	catalogSuffix = ".stations.parquet"
)

// Exporter renders summaries and catalogs to Parquet and hands them to a Sink.
type Exporter struct {
	componentMetadata types.ComponentMetadata
	sink              Sink
	compression       string

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewExporter returns an exporter writing to sink.
func NewExporter(sink Sink, options ...types.Option[*Exporter]) *Exporter {
	e := &Exporter{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "EXPORTER",
		},
		sink:        sink,
		compression: "snappy",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// WithLogger attaches loggers to the Exporter.
func WithLogger(l ...types.Logger) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.ConnectLogger(l...)
	}
}

// WithCompression selects the Parquet page compression.
func WithCompression(name string) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.compression = name
	}
}

// ConnectLogger registers loggers for export events.
func (e *Exporter) ConnectLogger(loggers ...types.Logger) {
	e.loggersLock.Lock()
	defer e.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			e.loggers = append(e.loggers, l)
		}
	}
}

// GetComponentMetadata returns the exporter's identity.
func (e *Exporter) GetComponentMetadata() types.ComponentMetadata {
	return e.componentMetadata
}

// SummaryName returns the export file name for a capture.
func SummaryName(capture string) string {
	base := filepath.Base(capture)
	return strings.TrimSuffix(base, filepath.Ext(base)) + summarySuffix
}

// CatalogName returns the export file name for a scan's catalog.
func CatalogName(scan string) string {
	if scan == "" {
		scan = "catalog"
	}
	return scan + catalogSuffix
}

// HasSummaries reports whether the capture's summaries were already exported.
func (e *Exporter) HasSummaries(ctx context.Context, capture string) (bool, error) {
	return e.sink.Exists(ctx, SummaryName(capture))
}

// ExportSummaries writes the capture's summaries and returns their location.
func (e *Exporter) ExportSummaries(ctx context.Context, capture string, bundle types.SummaryBundle) (string, error) {
	var buf bytes.Buffer
	n, err := WriteSummaries(&buf, capture, bundle, e.compression)
	if err != nil {
		return "", e.fail(capture, err)
	}
	return e.put(ctx, capture, SummaryName(capture), buf.Bytes(), n)
}

// ExportCatalog writes the catalog and returns its location.
func (e *Exporter) ExportCatalog(ctx context.Context, scan string, c types.Catalog) (string, error) {
	var buf bytes.Buffer
	n, err := WriteStations(&buf, c, e.compression)
	if err != nil {
		return "", e.fail(scan, err)
	}
	return e.put(ctx, scan, CatalogName(scan), buf.Bytes(), n)
}

func (e *Exporter) put(ctx context.Context, label, name string, data []byte, rows int) (string, error) {
	if err := e.sink.Put(ctx, name, data); err != nil {
		return "", e.fail(label, err)
	}
	loc := e.sink.Location(name)
	e.NotifyLoggers(types.InfoLevel, "export written",
		logschema.FieldComponent, e.componentMetadata,
		logschema.FieldEvent, "Export",
		logschema.FieldResult, logschema.ResultSuccess,
		"location", loc,
		"rows", rows,
		"bytes", len(data),
		"compression", e.compression,
	)
	return loc, nil
}

func (e *Exporter) fail(label string, err error) error {
	err = fmt.Errorf("export %s: %w", label, err)
	e.NotifyLoggers(types.ErrorLevel, "export failed",
		logschema.FieldComponent, e.componentMetadata,
		logschema.FieldEvent, "Export",
		logschema.FieldResult, logschema.ResultFailure,
		logschema.FieldError, err,
	)
	return err
}

// NotifyLoggers fans a log entry out to every connected logger.
func (e *Exporter) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := append([]types.Logger(nil), e.loggers...)
	e.loggersLock.Unlock()

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
		default:
			logger.Error(msg, keysAndValues...)
		}
	}
}
