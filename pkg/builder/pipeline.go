package builder

import (
	"time"

	s3ClientAdapter "github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/aggregator"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/export"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/pipeline"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/store"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type (
	Waterfall     = types.Waterfall
	Summary       = types.Summary
	SummaryBundle = types.SummaryBundle
	Station       = types.Station
	Catalog       = types.Catalog
	ScanParams    = types.ScanParams
	CatalogStore  = types.CatalogStore
	CaptureName   = grid.CaptureName
	Analysis      = pipeline.Analysis
	Report        = pipeline.Report
	CaptureReport = pipeline.CaptureReport
)

// Assembly

// NewAssembler creates a capture assembler.
func NewAssembler(options ...types.Option[*grid.Assembler]) *grid.Assembler {
	return grid.NewAssembler(options...)
}

func AssemblerWithLogger(l ...types.Logger) types.Option[*grid.Assembler] {
	return grid.WithLogger(l...)
}

func AssemblerWithSensor(s ...types.Sensor) types.Option[*grid.Assembler] {
	return grid.WithSensor(s...)
}

func AssemblerWithMaxLineBytes(n int) types.Option[*grid.Assembler] {
	return grid.WithMaxLineBytes(n)
}

// ParseCaptureName decodes the sweep settings from a capture file name.
func ParseCaptureName(path string) (grid.CaptureName, error) {
	return grid.ParseCaptureName(path)
}

// Aggregation

// NewAggregator creates the column aggregator.
func NewAggregator(options ...types.Option[*aggregator.Aggregator]) *aggregator.Aggregator {
	return aggregator.NewAggregator(options...)
}

func AggregatorWithLogger(l ...types.Logger) types.Option[*aggregator.Aggregator] {
	return aggregator.WithLogger(l...)
}

func AggregatorWithSensor(s ...types.Sensor) types.Option[*aggregator.Aggregator] {
	return aggregator.WithSensor(s...)
}

// Detection

// NewDetector creates a station detector for params.
func NewDetector(params types.ScanParams, options ...types.Option[*detector.Detector]) *detector.Detector {
	return detector.NewDetector(params, options...)
}

func DetectorWithLogger(l ...types.Logger) types.Option[*detector.Detector] {
	return detector.WithLogger(l...)
}

func DetectorWithSensor(s ...types.Sensor) types.Option[*detector.Detector] {
	return detector.WithSensor(s...)
}

// Catalog stores

// NewFileStore keeps the catalog in a JSON file replaced atomically on save.
func NewFileStore(path string, options ...types.Option[store.Configurable]) *store.FileStore {
	return store.NewFileStore(path, options...)
}

// NewS3Store keeps the catalog in one S3 object.
func NewS3Store(client *s3ClientAdapter.S3Client, key string, options ...types.Option[store.Configurable]) *store.S3Store {
	return store.NewS3Store(client, key, options...)
}

func StoreWithLogger(l ...types.Logger) types.Option[store.Configurable] {
	return store.WithLogger(l...)
}

func StoreWithSensor(s ...types.Sensor) types.Option[store.Configurable] {
	return store.WithSensor(s...)
}

// StoreWithBackup keeps the previous catalog as a timestamped backup,
// compressed with one of none, gzip, snappy, zstd, brotli or lz4.
func StoreWithBackup(compression string) (types.Option[store.Configurable], error) {
	c, err := codec.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return store.WithBackup(c), nil
}

func StoreWithClock(now func() time.Time) types.Option[store.Configurable] {
	return store.WithClock(now)
}

// Export

// NewExporter writes Parquet exports to sink.
func NewExporter(sink export.Sink, options ...types.Option[*export.Exporter]) *export.Exporter {
	return export.NewExporter(sink, options...)
}

// NewDirSink exports into a local directory.
func NewDirSink(dir string) *export.DirSink {
	return export.NewDirSink(dir)
}

// NewUploader exports under the client's prefix template for scan.
func NewUploader(client *s3ClientAdapter.S3Client, scan string) *export.Uploader {
	return export.NewUploader(client, scan)
}

func ExporterWithLogger(l ...types.Logger) types.Option[*export.Exporter] {
	return export.WithLogger(l...)
}

func ExporterWithCompression(name string) types.Option[*export.Exporter] {
	return export.WithCompression(name)
}

// Runner

// NewRunner creates a batch runner detecting with det against store.
func NewRunner(det *detector.Detector, catalog types.CatalogStore, options ...types.Option[*pipeline.Runner]) *pipeline.Runner {
	return pipeline.NewRunner(det, catalog, options...)
}

func RunnerWithLogger(l ...types.Logger) types.Option[*pipeline.Runner] {
	return pipeline.WithLogger(l...)
}

func RunnerWithSensor(s ...types.Sensor) types.Option[*pipeline.Runner] {
	return pipeline.WithSensor(s...)
}

func RunnerWithAssembler(a *grid.Assembler) types.Option[*pipeline.Runner] {
	return pipeline.WithAssembler(a)
}

func RunnerWithAggregator(a *aggregator.Aggregator) types.Option[*pipeline.Runner] {
	return pipeline.WithAggregator(a)
}

func RunnerWithPublisher(p types.StationPublisher) types.Option[*pipeline.Runner] {
	return pipeline.WithPublisher(p)
}

func RunnerWithExporter(e *export.Exporter) types.Option[*pipeline.Runner] {
	return pipeline.WithExporter(e)
}

func RunnerWithMeter(m types.Meter) types.Option[*pipeline.Runner] {
	return pipeline.WithMeter(m)
}

func RunnerWithWorkers(n int) types.Option[*pipeline.Runner] {
	return pipeline.WithWorkers(n)
}

func RunnerWithAlwaysSave(enabled bool) types.Option[*pipeline.Runner] {
	return pipeline.WithAlwaysSave(enabled)
}

func RunnerWithSkipExisting(enabled bool) types.Option[*pipeline.Runner] {
	return pipeline.WithSkipExisting(enabled)
}
