package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// S3Store keeps the catalog as a single JSON object. PutObject replaces the
// object whole, so readers never observe a partial catalog.
type S3Store struct {
	base

	client            *s3client.S3Client
	key               string
	backup            bool
	backupCompression codec.Compression
	now               func() time.Time
}

var _ types.CatalogStore = (*S3Store)(nil)

// NewS3Store returns a store for the object at key.
func NewS3Store(client *s3client.S3Client, key string, options ...types.Option[Configurable]) *S3Store {
	s := &S3Store{
		base: base{componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "S3_STORE",
		}},
		client:            client,
		key:               key,
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

// Name returns the catalog location as an s3:// URL.
func (s *S3Store) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.client.Bucket(), s.key)
}

func (s *S3Store) ConnectLogger(l ...types.Logger) { s.connectLogger(l...) }
func (s *S3Store) ConnectSensor(l ...types.Sensor) { s.connectSensor(l...) }
func (s *S3Store) SetName(name string)             { s.componentMetadata.Name = name }
func (s *S3Store) SetClock(now func() time.Time)   { s.now = now }

func (s *S3Store) SetBackup(enabled bool, compression codec.Compression) {
	s.backup = enabled
	s.backupCompression = compression
}

// Load fetches the catalog. A missing object is an empty catalog.
func (s *S3Store) Load(ctx context.Context) (types.Catalog, error) {
	data, err := s.client.Get(ctx, s.key)
	if errors.Is(err, s3client.ErrObjectNotFound) {
		s.NotifyLoggers(types.InfoLevel, "catalog not found, starting empty",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "Load",
			logschema.FieldResult, logschema.ResultSuccess,
			"key", s.key,
		)
		return types.Catalog{}, nil
	}
	if err != nil {
		return types.Catalog{}, fmt.Errorf("load catalog %s: %w", s.Name(), err)
	}
	c, err := codec.DecodeCatalog(data)
	if err != nil {
		return types.Catalog{}, fmt.Errorf("load catalog %s: %w", s.Name(), err)
	}
	return c, nil
}

// Save uploads c, sorted by station order, over the catalog object.
func (s *S3Store) Save(ctx context.Context, c types.Catalog) error {
	if err := s.save(ctx, c); err != nil {
		s.NotifyLoggers(types.ErrorLevel, "catalog save failed",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "Save",
			logschema.FieldResult, logschema.ResultFailure,
			"key", s.key,
			logschema.FieldError, err,
		)
		s.failed(err)
		return err
	}
	s.NotifyLoggers(types.InfoLevel, "catalog saved",
		logschema.FieldComponent, s.componentMetadata,
		logschema.FieldEvent, "Save",
		logschema.FieldResult, logschema.ResultSuccess,
		"key", s.key,
		"stations", c.Len(),
	)
	s.saved(s.Name(), c.Len())
	return nil
}

func (s *S3Store) save(ctx context.Context, c types.Catalog) error {
	sorted := c.Clone()
	sorted.Sort()
	data, err := codec.EncodeCatalog(sorted)
	if err != nil {
		return err
	}
	if s.backup {
		if err := s.backupExisting(ctx); err != nil {
			return err
		}
	}
	if err := s.client.Put(ctx, s.key, data, "application/json"); err != nil {
		return fmt.Errorf("save catalog %s: %w", s.Name(), err)
	}
	return nil
}

// BackupKey returns the key a backup taken at t receives.
func (s *S3Store) BackupKey(t time.Time) string {
	return backupName(s.key, t, s.backupCompression)
}

func (s *S3Store) backupExisting(ctx context.Context) error {
	dst := s.BackupKey(s.now())
	if s.backupCompression == codec.CompressNone || s.backupCompression == "" {
		err := s.client.Copy(ctx, s.key, dst)
		if errors.Is(err, s3client.ErrObjectNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("backup catalog %s: %w", s.Name(), err)
		}
		return nil
	}

	prev, err := s.client.Get(ctx, s.key)
	if errors.Is(err, s3client.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.Name(), err)
	}
	packed, err := codec.Compress(prev, s.backupCompression)
	if err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.Name(), err)
	}
	if err := s.client.Put(ctx, dst, packed, "application/octet-stream"); err != nil {
		return fmt.Errorf("backup catalog %s: %w", s.Name(), err)
	}
	return nil
}
