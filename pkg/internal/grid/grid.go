// Package grid assembles rtl_power style CSV captures into a Waterfall.
//
// Each capture line carries a date, a time, one frequency sub-range
// (start, end, step), an unused sample count and the power readings of that
// sub-range. Lines sharing a timestamp are concatenated, in sub-range order,
// into one row of the waterfall.
package grid

import (
	"sync"

	"github.com/google/uuid"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// DefaultMaxLineBytes bounds a single capture line. Wideband sweeps with many
// bins produce long lines.
const DefaultMaxLineBytes = 16 << 20

// Assembler turns capture text into a Waterfall.
type Assembler struct {
	componentMetadata types.ComponentMetadata
	maxLineBytes      int

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewAssembler constructs an Assembler with optional configuration.
func NewAssembler(options ...types.Option[*Assembler]) *Assembler {
	a := &Assembler{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "ASSEMBLER",
		},
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}
