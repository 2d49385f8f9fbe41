package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/sensor"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/store"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

func sampleCatalog() types.Catalog {
	name := "Radio X"
	return types.Catalog{Stations: []types.Station{
		{FreqCenter: 106e6, Bw: 20e3, PowerDB: -55, RelativeDB: 35, Name: &name},
		{FreqCenter: 105e6, Bw: 10e3, PowerDB: -60, RelativeDB: 30},
	}}
}

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "scanresult.json"))
	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d stations", c.Len())
	}
}

func TestFileStore_SaveLoadSorted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "scanresult.json")
	s := store.NewFileStore(path)
	ctx := context.Background()

	in := sampleCatalog()
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if in.Stations[0].FreqCenter != 106e6 {
		t.Fatal("Save must not reorder the caller's catalog")
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Len() != 2 || out.Stations[0].FreqCenter != 105e6 || out.Stations[1].FreqCenter != 106e6 {
		t.Fatalf("expected stations sorted by center minus bandwidth, got %+v", out.Stations)
	}
	if !out.Stations[1].HasName() || *out.Stations[1].Name != "Radio X" {
		t.Fatal("expected curated name to survive a save")
	}

	if names := listDir(t, filepath.Dir(path)); len(names) != 1 || names[0] != "scanresult.json" {
		t.Fatalf("expected only the catalog file, got %v", names)
	}
	if s.Name() != path {
		t.Fatalf("unexpected store name %q", s.Name())
	}
}

func TestFileStore_LoadTolerantDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanresult.json")
	doc := `{"stations": [{"freq_left": "100M", "freq_right": 100020000, "comment": "manual"}], "legend": {}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := store.NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 || c.Stations[0].FreqCenter != 100.01e6 || c.Stations[0].Bw != 20e3 {
		t.Fatalf("unexpected stations %+v", c.Stations)
	}

	if err := store.NewFileStore(path).Save(context.Background(), c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, kept := range []string{`"comment": "manual"`, `"freq_left": "100M"`, `"freq_right": 100020000`} {
		if !strings.Contains(string(data), kept) {
			t.Fatalf("saved catalog lost %s:\n%s", kept, data)
		}
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanresult.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := store.NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileStore_Backup(t *testing.T) {
	for _, algo := range []codec.Compression{codec.CompressNone, codec.CompressZstd, codec.CompressGzip} {
		t.Run(algo.String(), func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "scanresult.json")
			s := store.NewFileStore(path, store.WithBackup(algo), store.WithClock(fixedClock))
			ctx := context.Background()

			if err := s.Save(ctx, types.Catalog{}); err != nil {
				t.Fatalf("first Save: %v", err)
			}
			if names := listDir(t, dir); len(names) != 1 {
				t.Fatalf("first save must not create a backup, got %v", names)
			}
			first, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}

			if err := s.Save(ctx, sampleCatalog()); err != nil {
				t.Fatalf("second Save: %v", err)
			}

			backup := s.BackupPath(fixedClock())
			if !strings.HasSuffix(backup, "scanresult.json.1700000000.backup"+algo.Extension()) {
				t.Fatalf("unexpected backup name %q", backup)
			}
			packed, err := os.ReadFile(backup)
			if err != nil {
				t.Fatalf("expected backup file: %v", err)
			}
			prev, err := codec.Decompress(packed, algo)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if string(prev) != string(first) {
				t.Fatalf("backup does not hold the previous catalog:\n%s", prev)
			}
		})
	}
}

func TestFileStore_SensorAndContext(t *testing.T) {
	var savedSize int
	var savedStore string
	sn := sensor.NewSensor(sensor.WithOnCatalogSavedFunc(func(_ types.ComponentMetadata, name string, size int) {
		savedStore, savedSize = name, size
	}))

	path := filepath.Join(t.TempDir(), "scanresult.json")
	s := store.NewFileStore(path, store.WithSensor(sn), store.WithName("catalog"))
	if err := s.Save(context.Background(), sampleCatalog()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if savedStore != path || savedSize != 2 {
		t.Fatalf("expected saved callback for %s with 2 stations, got %q %d", path, savedStore, savedSize)
	}
	if md := s.GetComponentMetadata(); md.Type != "FILE_STORE" || md.Name != "catalog" {
		t.Fatalf("unexpected metadata %+v", md)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, sampleCatalog()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
