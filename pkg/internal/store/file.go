package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// FileStore keeps the catalog in a JSON file. Saves write a sibling temporary
// file, sync it and rename it over the target.
type FileStore struct {
	base

	path              string
	backup            bool
	backupCompression codec.Compression
	now               func() time.Time
}

var _ types.CatalogStore = (*FileStore)(nil)

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, options ...types.Option[Configurable]) *FileStore {
	s := &FileStore{
		base: base{componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "FILE_STORE",
		}},
		path:              path,
		backupCompression: codec.CompressNone,
		now:               time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Name returns the catalog path.
func (s *FileStore) Name() string { return s.path }

func (s *FileStore) ConnectLogger(l ...types.Logger) { s.connectLogger(l...) }
func (s *FileStore) ConnectSensor(l ...types.Sensor) { s.connectSensor(l...) }
func (s *FileStore) SetName(name string)             { s.componentMetadata.Name = name }
func (s *FileStore) SetClock(now func() time.Time)   { s.now = now }

func (s *FileStore) SetBackup(enabled bool, compression codec.Compression) {
	s.backup = enabled
	s.backupCompression = compression
}

// Load reads the catalog. A missing file is an empty catalog.
func (s *FileStore) Load(ctx context.Context) (types.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return types.Catalog{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.NotifyLoggers(types.InfoLevel, "catalog not found, starting empty",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "Load",
			logschema.FieldResult, logschema.ResultSuccess,
			"path", s.path,
		)
		return types.Catalog{}, nil
	}
	if err != nil {
		return types.Catalog{}, fmt.Errorf("load catalog %s: %w", s.path, err)
	}
	c, err := codec.DecodeCatalog(data)
	if err != nil {
		return types.Catalog{}, fmt.Errorf("load catalog %s: %w", s.path, err)
	}
	s.NotifyLoggers(types.DebugLevel, "catalog loaded",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "Load",
		logschema.FieldResult, logschema.ResultSuccess,
		"path", s.path,
		"stations", c.Len(),
	)
	return c, nil
}

// Save replaces the catalog file with c, sorted by station order.
func (s *FileStore) Save(ctx context.Context, c types.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.save(c); err != nil {
		s.NotifyLoggers(types.ErrorLevel, "catalog save failed",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "Save",
			logschema.FieldResult, logschema.ResultFailure,
			"path", s.path,
			logschema.FieldError, err,
		)
		s.failed(err)
		return err
	}
	s.NotifyLoggers(types.InfoLevel, "catalog saved",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "Save",
		logschema.FieldResult, logschema.ResultSuccess,
		"path", s.path,
		"stations", c.Len(),
	)
	s.saved(s.path, c.Len())
	return nil
}

func (s *FileStore) save(c types.Catalog) error {
	sorted := c.Clone()
	sorted.Sort()
	data, err := codec.EncodeCatalog(sorted)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save catalog %s: %w", s.path, err)
	}
	if s.backup {
		if err := s.backupExisting(); err != nil {
			return err
		}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save catalog %s: %w", s.path, err)
	}
	return nil
}

// BackupPath returns the name a backup taken at t receives.
func (s *FileStore) BackupPath(t time.Time) string {
	return backupName(s.path, t, s.backupCompression)
}

func (s *FileStore) backupExisting() error {
	prev, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.path, err)
	}
	packed, err := codec.Compress(prev, s.backupCompression)
	if err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.path, err)
	}
	dst := s.BackupPath(s.now())
	if err := writeFileAtomic(dst, packed); err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.path, err)
	}
	s.NotifyLoggers(types.DebugLevel, "catalog backed up",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "Backup",
		logschema.FieldResult, logschema.ResultSuccess,
		"path", dst,
		"compression", s.backupCompression.String(),
	)
	return nil
}

func backupName(name string, t time.Time, compression codec.Compression) string {
	return fmt.Sprintf("%s.%d%s%s", name, t.Unix(), BackupSuffix, compression.Extension())
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, file+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
