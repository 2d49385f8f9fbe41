package types

import "context"

// CatalogStore persists the station catalog. Load treats a missing catalog as empty and
// Save replaces the whole catalog atomically.
type CatalogStore interface {
	Load(ctx context.Context) (Catalog, error)
	Save(ctx context.Context, c Catalog) error
	Name() string
}

// StationPublisher announces newly discovered stations to downstream consumers.
type StationPublisher interface {
	Publish(ctx context.Context, runID, capture string, stations []Station) error
	Close() error
}
