package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/detector"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/export"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/internallogger"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/meter"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/pipeline"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/sensor"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/store"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/synth"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fmParams = types.ScanParams{Name: "fm", BwMin: 3e3, BwMax: 50e3, MinRelativeDB: 6}

type published struct {
	runID    string
	capture  string
	stations []types.Station
}

type recordingPublisher struct {
	mu    sync.Mutex
	calls []published
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, runID, capture string, stations []types.Station) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if len(stations) > 0 {
		p.calls = append(p.calls, published{runID, capture, append([]types.Station(nil), stations...)})
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func writeCapture(t *testing.T, dir, name string, seed uint64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create capture: %v", err)
	}
	defer f.Close()
	if err := synth.FMBand(seed, 1.0).WriteCapture(f); err != nil {
		t.Fatalf("write capture: %v", err)
	}
	return path
}

func fmCaptureName() string {
	return grid.CaptureName{Start: 88e6, End: 88e6 + 1024*3125, Binsize: 3125, Interval: 1, QuitAfter: 50}.String()
}

func TestRun_DetectsSavesAndPublishes(t *testing.T) {
	dir := t.TempDir()
	first := writeCapture(t, dir, fmCaptureName(), 1)
	second := writeCapture(t, dir, "later.csv", 7)
	catalogPath := filepath.Join(dir, "scanresult.json")

	pub := &recordingPublisher{}
	var analyzed []string
	var mu sync.Mutex
	s := sensor.NewSensor(sensor.WithOnCaptureAnalyzedFunc(func(c types.ComponentMetadata, capture string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			analyzed = append(analyzed, capture)
		}
	}))

	r := pipeline.NewRunner(
		detector.NewDetector(fmParams),
		store.NewFileStore(catalogPath),
		pipeline.WithPublisher(pub),
		pipeline.WithSensor(s),
		pipeline.WithWorkers(2),
		pipeline.WithRunIDFunc(func() string { return "run-1" }),
	)

	// Passed in reverse to check that detection follows capture name order.
	report, err := r.Run(context.Background(), second, first)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RunID != "run-1" || report.Scan != "fm" {
		t.Fatalf("unexpected report identity %+v", report)
	}
	if report.Added != 1 || report.CatalogSize != 1 || !report.Saved {
		t.Fatalf("expected one saved station, got %+v", report)
	}
	if len(report.Captures) != 2 {
		t.Fatalf("expected 2 capture reports, got %+v", report.Captures)
	}
	if report.Captures[0].Capture != filepath.Base(first) || len(report.Captures[0].Added) != 1 {
		t.Fatalf("first capture in name order should add the station: %+v", report.Captures[0])
	}
	if report.Captures[0].Label != "88.00M-91.20M" {
		t.Fatalf("unexpected label %q", report.Captures[0].Label)
	}
	if len(report.Captures[1].Added) != 0 || report.Captures[1].Label != "later.csv" {
		t.Fatalf("second capture should only see a duplicate: %+v", report.Captures[1])
	}
	if len(analyzed) != 2 {
		t.Fatalf("expected 2 analyzed callbacks, got %v", analyzed)
	}

	loaded, err := store.NewFileStore(catalogPath).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 stored station, got %+v", loaded.Stations)
	}

	if len(pub.calls) != 1 {
		t.Fatalf("expected one publish batch, got %+v", pub.calls)
	}
	if c := pub.calls[0]; c.runID != "run-1" || c.capture != filepath.Base(first) || len(c.stations) != 1 {
		t.Fatalf("unexpected publish %+v", c)
	}
}

func TestRun_NoChangeSkipsSave(t *testing.T) {
	dir := t.TempDir()
	capture := writeCapture(t, dir, "fm.csv", 1)
	catalogPath := filepath.Join(dir, "scanresult.json")

	newRunner := func(opts ...types.Option[*pipeline.Runner]) *pipeline.Runner {
		return pipeline.NewRunner(detector.NewDetector(fmParams), store.NewFileStore(catalogPath), opts...)
	}
	if _, err := newRunner().Run(context.Background(), capture); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	report, err := newRunner().Run(context.Background(), capture)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Added != 0 || report.Saved {
		t.Fatalf("expected an unchanged, unsaved catalog: %+v", report)
	}

	report, err = newRunner(pipeline.WithAlwaysSave(true)).Run(context.Background(), capture)
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if !report.Saved || report.CatalogSize != 1 {
		t.Fatalf("expected a forced save: %+v", report)
	}
}

func TestRun_FailingCaptureAbortsWithoutSave(t *testing.T) {
	dir := t.TempDir()
	good := writeCapture(t, dir, "a.csv", 1)
	bad := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(bad, []byte("2014-08-17, 00:00:00, 1, 2, 1, 1, x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	catalogPath := filepath.Join(dir, "scanresult.json")

	pub := &recordingPublisher{}
	var errs int
	var mu sync.Mutex
	s := sensor.NewSensor(sensor.WithOnErrorFunc(func(c types.ComponentMetadata, err error) {
		mu.Lock()
		errs++
		mu.Unlock()
	}))
	core, logs := observer.New(zapcore.DebugLevel)

	r := pipeline.NewRunner(detector.NewDetector(fmParams), store.NewFileStore(catalogPath),
		pipeline.WithPublisher(pub),
		pipeline.WithSensor(s),
		pipeline.WithLogger(internallogger.NewLogger(internallogger.LoggerWithCore(core))),
	)
	_, err := r.Run(context.Background(), good, bad)
	var malformed *types.MalformedCaptureError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedCaptureError, got %v", err)
	}
	if _, statErr := os.Stat(catalogPath); !os.IsNotExist(statErr) {
		t.Fatalf("catalog must not be written on failure, stat err %v", statErr)
	}
	if len(pub.calls) != 0 {
		t.Fatalf("nothing should be published, got %+v", pub.calls)
	}
	if errs != 1 {
		t.Fatalf("expected one error callback, got %d", errs)
	}
	if logs.FilterMessage("run failed").Len() != 1 {
		t.Fatalf("expected a run failed log entry, got %d", logs.FilterMessage("run failed").Len())
	}
}

func TestRun_PublishFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	capture := writeCapture(t, dir, "fm.csv", 1)
	boom := errors.New("broker down")

	r := pipeline.NewRunner(detector.NewDetector(fmParams), store.NewFileStore(filepath.Join(dir, "c.json")),
		pipeline.WithPublisher(&recordingPublisher{err: boom}),
	)
	report, err := r.Run(context.Background(), capture)
	if !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if !report.Saved {
		t.Fatal("catalog is saved before stations are announced")
	}
}

func TestRun_ExportsAndSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	capture := writeCapture(t, dir, "fm.csv", 1)
	exportDir := filepath.Join(dir, "export")
	catalogPath := filepath.Join(dir, "scanresult.json")

	newRunner := func() *pipeline.Runner {
		return pipeline.NewRunner(detector.NewDetector(fmParams), store.NewFileStore(catalogPath),
			pipeline.WithExporter(export.NewExporter(export.NewDirSink(exportDir))),
			pipeline.WithSkipExisting(true),
			pipeline.WithMeter(meter.NewMeter()),
		)
	}

	report, err := newRunner().Run(context.Background(), capture)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := filepath.Join(exportDir, "fm.summary.parquet"); report.Captures[0].Export != want {
		t.Fatalf("expected summary export at %s, got %q", want, report.Captures[0].Export)
	}
	if want := filepath.Join(exportDir, "fm.stations.parquet"); report.CatalogExport != want {
		t.Fatalf("expected catalog export at %s, got %q", want, report.CatalogExport)
	}
	for _, p := range []string{report.Captures[0].Export, report.CatalogExport} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing export %s: %v", p, err)
		}
	}

	report, err = newRunner().Run(context.Background(), capture)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(report.Captures) != 1 || !report.Captures[0].Skipped {
		t.Fatalf("expected the exported capture to be skipped: %+v", report.Captures)
	}
	if report.Saved || report.CatalogSize != 1 {
		t.Fatalf("skipped run should leave the catalog alone: %+v", report)
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	capture := writeCapture(t, dir, fmCaptureName(), 1)
	r := pipeline.NewRunner(detector.NewDetector(fmParams), store.NewFileStore(filepath.Join(dir, "c.json")))

	a, err := r.AnalyzeFile(context.Background(), capture)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if a.Waterfall.Rows() != 50 || a.Waterfall.Cols() != 1024 {
		t.Fatalf("unexpected waterfall %dx%d", a.Waterfall.Rows(), a.Waterfall.Cols())
	}
	if a.Bundle.FreqStart != 88e6 || a.Bundle.FreqStep != 3125 || len(a.Bundle.Max.Signal) != 1024 {
		t.Fatalf("unexpected bundle axis %+v", a.Bundle)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.AnalyzeFile(ctx, capture); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := r.AnalyzeFile(context.Background(), filepath.Join(dir, "absent.csv")); err == nil {
		t.Fatal("expected error for a missing capture")
	}
}

func TestRun_RequiresStore(t *testing.T) {
	if _, err := pipeline.NewRunner(detector.NewDetector(fmParams), nil).Run(context.Background()); err == nil {
		t.Fatal("expected error without a catalog store")
	}
}
