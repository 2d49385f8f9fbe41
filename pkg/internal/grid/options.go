package grid

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// WithLogger attaches loggers to the Assembler.
func WithLogger(logger ...types.Logger) types.Option[*Assembler] {
	return func(a *Assembler) {
		a.ConnectLogger(logger...)
	}
}

// WithSensor attaches sensors to the Assembler.
func WithSensor(sensor ...types.Sensor) types.Option[*Assembler] {
	return func(a *Assembler) {
		a.ConnectSensor(sensor...)
	}
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[*Assembler] {
	return func(a *Assembler) {
		a.componentMetadata.Name = name
	}
}

// WithMaxLineBytes overrides DefaultMaxLineBytes. Non-positive values are ignored.
func WithMaxLineBytes(n int) types.Option[*Assembler] {
	return func(a *Assembler) {
		if n > 0 {
			a.maxLineBytes = n
		}
	}
}
