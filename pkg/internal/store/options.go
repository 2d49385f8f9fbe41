package store

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// Configurable is implemented by every catalog store.
type Configurable interface {
	ConnectLogger(...types.Logger)
	ConnectSensor(...types.Sensor)
	SetName(name string)
	SetBackup(enabled bool, compression codec.Compression)
	SetClock(now func() time.Time)
}

// WithLogger attaches loggers to the store.
func WithLogger(l ...types.Logger) types.Option[Configurable] {
	return func(s Configurable) {
		s.ConnectLogger(l...)
	}
}

// WithSensor attaches sensors notified after each save.
func WithSensor(sensor ...types.Sensor) types.Option[Configurable] {
	return func(s Configurable) {
		s.ConnectSensor(sensor...)
	}
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[Configurable] {
	return func(s Configurable) {
		s.SetName(name)
	}
}

// WithBackup keeps a timestamped copy of the previous catalog before each save,
// compressed with the given algorithm.
func WithBackup(compression codec.Compression) types.Option[Configurable] {
	return func(s Configurable) {
		s.SetBackup(true, compression)
	}
}

// WithClock overrides the clock used to timestamp backups.
func WithClock(now func() time.Time) types.Option[Configurable] {
	return func(s Configurable) {
		if now != nil {
			s.SetClock(now)
		}
	}
}
