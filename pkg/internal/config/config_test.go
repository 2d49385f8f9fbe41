package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/config"
)

const sample = `
log:
  level: debug
catalog:
  path: /var/lib/sdrhunter/{scan}/scanresult.json
  backup: true
  backup_compression: zstd
export:
  dir: /var/lib/sdrhunter/export
publisher:
  brokers: ["broker-1:9092"]
  topic: stations
  batch_timeout: 250ms
workers: 2
global:
  scans:
    interval: 10s
    nbsamples_lines: 30
    nbsamples_freqs: 1024
    bwmin: 3k
    bwmax: 50k
    minrelativedb: 6
scans:
  - name: fm
    freq_start: 88M
    freq_end: 108M
    windows: 2.4M
  - name: pmr
    freq_start: 446M
    freq_end: 446.2M
    interval: 1m
    minrelativedb: 3
`

func TestParse_MergesGlobalDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(cfg.Scans))
	}

	fm, err := cfg.Scan("fm")
	if err != nil {
		t.Fatalf("Scan(fm): %v", err)
	}
	if fm.FreqStart != 88e6 || fm.Windows != 2.4e6 {
		t.Fatalf("unexpected fm range %+v", fm)
	}
	if fm.BwMin != 3e3 || fm.BwMax != 50e3 || fm.MinRelativeDB != 6 {
		t.Fatalf("global detector params not merged: %+v", fm)
	}
	if fm.Interval != 10 || fm.QuitAfter != 300 {
		t.Fatalf("unexpected timing %+v", fm)
	}

	pmr, err := cfg.Scan("pmr")
	if err != nil {
		t.Fatalf("Scan(pmr): %v", err)
	}
	if pmr.Interval != 60 || pmr.MinRelativeDB != 3 {
		t.Fatalf("scan values must win over global defaults: %+v", pmr)
	}
	if pmr.Windows != pmr.Delta {
		t.Fatalf("windows should default to the full span, got %g for delta %g", pmr.Windows, pmr.Delta)
	}
	if pmr.NbStep != 1 {
		t.Fatalf("expected a single window, got %d", pmr.NbStep)
	}

	if p := fm.Params(); p.Name != "fm" || p.Validate() != nil {
		t.Fatalf("unexpected params %+v", p)
	}
	if cfg.Workers != 2 || cfg.Log.Level != "debug" || cfg.Publisher.BatchTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected top level settings %+v", cfg)
	}
	if !cfg.Publisher.Enabled() || !cfg.Export.Enabled() {
		t.Fatal("publisher and export should be enabled")
	}
	if got := cfg.CatalogPath("fm"); got != "/var/lib/sdrhunter/fm/scanresult.json" {
		t.Fatalf("unexpected catalog path %q", got)
	}
}

func TestParse_ExtendsToWholeWindows(t *testing.T) {
	fm := mustScan(t, `
scans:
  - name: fm
    freq_start: 88M
    freq_end: 108M
    windows: 2.4M
    nbsamples_freqs: 1024
`)
	// 20M is not a multiple of 2.4M: the end grows to 9 windows.
	if fm.FreqEnd != 88e6+9*2.4e6 {
		t.Fatalf("expected freq_end extended to %g, got %g", 88e6+9*2.4e6, fm.FreqEnd)
	}
	if fm.NbStep != 9 {
		t.Fatalf("expected 9 steps, got %d", fm.NbStep)
	}
	if fm.Binsize != 2347 {
		t.Fatalf("expected binsize ceil(2.4M/1023)=2347, got %g", fm.Binsize)
	}

	names := fm.CaptureNames()
	if len(names) != 9 {
		t.Fatalf("expected 9 capture names, got %d", len(names))
	}
	if names[0].Start != 88e6 || names[1].Start != 90.4e6 || names[8].End != fm.FreqEnd {
		t.Fatalf("unexpected capture windows %+v", names)
	}
}

func TestParse_SplitWindows(t *testing.T) {
	s := mustScan(t, `
scans:
  - name: air
    freq_start: 118M
    freq_end: 120M
    windows: 1M
    splitwindows: true
`)
	if s.NbStep != 4 {
		t.Fatalf("expected 4 half-window steps, got %d", s.NbStep)
	}
	names := s.CaptureNames()
	if names[1].Start != 118.5e6 || names[1].End != 119.5e6 {
		t.Fatalf("unexpected second window %+v", names[1])
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"missing name":      "scans:\n  - freq_start: 1M\n    freq_end: 2M\n",
		"missing freq_end":  "scans:\n  - name: a\n    freq_start: 1M\n",
		"bad unit":          "scans:\n  - name: a\n    freq_start: 1X\n    freq_end: 2M\n",
		"inverted range":    "scans:\n  - name: a\n    freq_start: 2M\n    freq_end: 1M\n",
		"not power of two":  "scans:\n  - name: a\n    freq_start: 1M\n    freq_end: 2M\n    nbsamples_freqs: 1000\n",
		"duplicate name":    "scans:\n  - {name: a, freq_start: 1M, freq_end: 2M}\n  - {name: a, freq_start: 3M, freq_end: 4M}\n",
		"bad split windows": "scans:\n  - {name: a, freq_start: 1M, freq_end: 2M, splitwindows: maybe}\n",
		"not yaml":          "scans: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestScanSelection(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := cfg.Scan(""); err == nil || !strings.Contains(err.Error(), "fm, pmr") {
		t.Fatalf("expected ambiguity error listing scans, got %v", err)
	}
	if _, err := cfg.Scan("nope"); err == nil {
		t.Fatal("expected unknown scan error")
	}

	single := mustConfig(t, "scans:\n  - {name: a, freq_start: 1M, freq_end: 2M}\n")
	if s, err := single.Scan(""); err != nil || s.Name != "a" {
		t.Fatalf("expected the only scan, got %+v %v", s, err)
	}
	if _, err := config.Default().Scan(""); err == nil {
		t.Fatal("expected error with no scans")
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Workers != config.DefaultWorkers || cfg.Log.Level != config.DefaultLogLevel {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogPath("x") != config.DefaultCatalogPath {
		t.Fatalf("unexpected default catalog %q", cfg.CatalogPath("x"))
	}
	if cfg.Export.Enabled() || cfg.Publisher.Enabled() {
		t.Fatal("exports and publisher should be off by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdrhunter.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvCatalog, "/tmp/{scan}.json")
	t.Setenv(config.EnvWorkers, "8")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Workers != 8 || cfg.CatalogPath("fm") != "/tmp/fm.json" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMarshal(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{"name: fm", "nbstep: 9", "workers: 2"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("marshalled config lacks %q:\n%s", want, out)
		}
	}
}

func mustConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

func mustScan(t *testing.T, doc string) config.ScanConfig {
	t.Helper()
	cfg := mustConfig(t, doc)
	if len(cfg.Scans) != 1 {
		t.Fatalf("expected one scan, got %d", len(cfg.Scans))
	}
	return cfg.Scans[0]
}

func TestMarshal_MasksSecrets(t *testing.T) {
	cfg := mustConfig(t, `
catalog:
  s3:
    bucket: sdr
    access_key: AKIA
    secret_key: hunter2
publisher:
  brokers: [b:9092]
  topic: t
  username: sdr
  password: s3cret
`)
	out, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, secret := range []string{"hunter2", "s3cret"} {
		if strings.Contains(string(out), secret) {
			t.Fatalf("marshalled config leaks %q:\n%s", secret, out)
		}
	}
	if cfg.Catalog.S3.SecretKey != "hunter2" {
		t.Fatal("masking must not modify the loaded config")
	}
	if w := cfg.Publisher.WriterConfig(); w.Security.Username != "sdr" || w.Topic != "t" {
		t.Fatalf("unexpected writer config %+v", w)
	}
	if cfg.Catalog.Path != "" || cfg.CatalogKey("fm") != config.DefaultCatalogPath {
		t.Fatalf("S3 catalog should not get a default path: %q %q", cfg.Catalog.Path, cfg.CatalogKey("fm"))
	}
}
