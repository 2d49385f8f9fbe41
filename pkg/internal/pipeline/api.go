package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/grid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// Analysis is the summarized form of one capture file.
type Analysis struct {
	Capture   string // Base name of the capture file.
	Path      string
	Label     string // Frequency span from the file name, or the base name.
	Waterfall *types.Waterfall
	Bundle    types.SummaryBundle
}

// CaptureReport is the outcome of one capture within a run.
type CaptureReport struct {
	Capture string
	Label   string
	Skipped bool            // Summary export already present.
	Added   []types.Station // Stations this capture added to the catalog.
	Export  string          // Summary export location, if exported.
}

// Report summarizes a Run.
type Report struct {
	RunID         string
	Scan          string
	Captures      []CaptureReport
	Added         int
	CatalogSize   int
	Saved         bool
	CatalogExport string
	Duration      time.Duration
}

// AnalyzeFile assembles and summarizes the capture at path.
func (r *Runner) AnalyzeFile(ctx context.Context, path string) (Analysis, error) {
	capture := filepath.Base(path)
	a := Analysis{Capture: capture, Path: path, Label: captureLabel(path)}

	err := ctx.Err()
	if err == nil {
		a.Waterfall, err = r.assembler.AssembleFile(path)
	}
	if err == nil {
		a.Bundle, err = r.aggregator.Summarize(capture, a.Waterfall)
	}
	for _, s := range r.snapshotSensors() {
		s.InvokeOnCaptureAnalyzed(r.componentMetadata, capture, err)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("capture %s: %w", capture, err)
	}
	return a, nil
}

// Run analyzes the captures at paths concurrently, then merges their stations
// into the catalog one capture at a time in name order. The catalog is saved
// once at the end; any failing capture aborts the run before the save.
func (r *Runner) Run(ctx context.Context, paths ...string) (Report, error) {
	start := time.Now()
	report := Report{RunID: r.newRunID(), Scan: r.Scan()}
	if r.detector == nil || r.store == nil {
		return report, fmt.Errorf("runner: detector and catalog store are required")
	}

	catalog, err := r.store.Load(ctx)
	if err != nil {
		return report, r.fail(report.RunID, "", fmt.Errorf("load catalog %s: %w", r.store.Name(), err))
	}
	before := catalog.Len()

	paths = sortedCaptures(paths)
	pending, skipped, err := r.pending(ctx, paths)
	if err != nil {
		return report, r.fail(report.RunID, "", err)
	}

	analyses, err := r.analyzeAll(ctx, pending)
	if err != nil {
		return report, r.fail(report.RunID, "", err)
	}

	reports := make(map[string]*CaptureReport, len(paths))
	for _, path := range skipped {
		cr := &CaptureReport{Capture: filepath.Base(path), Label: captureLabel(path), Skipped: true}
		reports[path] = cr
	}
	for _, a := range analyses {
		out, err := r.detector.Detect(catalog, a.Bundle)
		if err != nil {
			return report, r.fail(report.RunID, a.Capture, fmt.Errorf("capture %s: %w", a.Capture, err))
		}
		added := addedStations(catalog, out)
		catalog = out
		reports[a.Path] = &CaptureReport{Capture: a.Capture, Label: a.Label, Added: added}
		report.Added += len(added)

		r.NotifyLoggers(types.InfoLevel, "capture processed",
			logschema.FieldComponent, r.componentMetadata,
			logschema.FieldEvent, "Detect",
			logschema.FieldResult, logschema.ResultSuccess,
			logschema.FieldRunID, report.RunID,
			logschema.FieldCapture, a.Capture,
			"label", a.Label,
			"added", len(added),
			"catalog_size", catalog.Len(),
		)
	}
	report.CatalogSize = catalog.Len()

	if report.Added > 0 || r.alwaysSave {
		if err := r.store.Save(ctx, catalog); err != nil {
			return report, r.fail(report.RunID, "", fmt.Errorf("save catalog %s: %w", r.store.Name(), err))
		}
		report.Saved = true
	}

	for _, a := range analyses {
		cr := reports[a.Path]
		if err := r.publisher.Publish(ctx, report.RunID, a.Capture, cr.Added); err != nil {
			return report, r.fail(report.RunID, a.Capture, fmt.Errorf("publish stations: %w", err))
		}
		if r.exporter != nil {
			loc, err := r.exporter.ExportSummaries(ctx, a.Capture, a.Bundle)
			if err != nil {
				return report, r.fail(report.RunID, a.Capture, err)
			}
			cr.Export = loc
		}
	}
	if r.exporter != nil && report.Saved {
		loc, err := r.exporter.ExportCatalog(ctx, report.Scan, catalog)
		if err != nil {
			return report, r.fail(report.RunID, "", err)
		}
		report.CatalogExport = loc
	}

	for _, path := range paths {
		if cr, ok := reports[path]; ok {
			report.Captures = append(report.Captures, *cr)
		}
	}
	report.Duration = time.Since(start)

	for _, s := range r.snapshotSensors() {
		s.InvokeOnStageComplete(r.componentMetadata, "run", report.Duration)
	}
	r.NotifyLoggers(types.InfoLevel, "run complete",
		logschema.FieldComponent, r.componentMetadata,
		logschema.FieldEvent, "Run",
		logschema.FieldResult, logschema.ResultSuccess,
		logschema.FieldRunID, report.RunID,
		logschema.FieldScan, report.Scan,
		"captures", len(analyses),
		"skipped", len(skipped),
		"added", report.Added,
		"catalog_before", before,
		"catalog_size", report.CatalogSize,
		"saved", report.Saved,
	)

	if r.meter != nil {
		if err := r.meter.Push(ctx); err != nil {
			r.NotifyLoggers(types.WarnLevel, "metrics push failed",
				logschema.FieldComponent, r.componentMetadata,
				logschema.FieldEvent, "Push",
				logschema.FieldResult, logschema.ResultFailure,
				logschema.FieldRunID, report.RunID,
				logschema.FieldError, err,
			)
		}
	}
	return report, nil
}

func (r *Runner) pending(ctx context.Context, paths []string) (pending, skipped []string, err error) {
	if !r.skipExisting || r.exporter == nil {
		return paths, nil, nil
	}
	for _, path := range paths {
		ok, err := r.exporter.HasSummaries(ctx, filepath.Base(path))
		if err != nil {
			return nil, nil, fmt.Errorf("check export of %s: %w", filepath.Base(path), err)
		}
		if ok {
			skipped = append(skipped, path)
			continue
		}
		pending = append(pending, path)
	}
	return pending, skipped, nil
}

func (r *Runner) analyzeAll(ctx context.Context, paths []string) ([]Analysis, error) {
	analyses := make([]Analysis, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			a, err := r.AnalyzeFile(gctx, path)
			if err != nil {
				return err
			}
			analyses[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *Runner) fail(runID, capture string, err error) error {
	r.NotifyLoggers(types.ErrorLevel, "run failed",
		logschema.FieldComponent, r.componentMetadata,
		logschema.FieldEvent, "Run",
		logschema.FieldResult, logschema.ResultFailure,
		logschema.FieldRunID, runID,
		logschema.FieldCapture, capture,
		logschema.FieldError, err,
	)
	for _, s := range r.snapshotSensors() {
		s.InvokeOnError(r.componentMetadata, err)
	}
	return err
}

// addedStations returns the stations of after that are not in before.
func addedStations(before, after types.Catalog) []types.Station {
	type key struct{ center, bw float64 }
	known := make(map[key]struct{}, before.Len())
	for _, s := range before.Stations {
		known[key{s.FreqCenter, s.Bw}] = struct{}{}
	}
	var added []types.Station
	for _, s := range after.Stations {
		if _, ok := known[key{s.FreqCenter, s.Bw}]; !ok {
			added = append(added, s)
		}
	}
	return added
}

// sortedCaptures orders paths by base name then full path, dropping repeats.
func sortedCaptures(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := filepath.Base(out[i]), filepath.Base(out[j])
		if bi != bj {
			return bi < bj
		}
		return out[i] < out[j]
	})
	return out
}

func captureLabel(path string) string {
	if name, err := grid.ParseCaptureName(path); err == nil {
		return name.Label()
	}
	return filepath.Base(path)
}
