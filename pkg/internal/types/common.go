package types

// ComponentMetadata defines the essential identifying information for components within the pipeline.
// It includes identifiers and descriptive information used when components log or report telemetry.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Type of the component, e.g. "ASSEMBLER", "DETECTOR".
	Name string // Human-readable name for the component.
}

// Option defines a configuration option function applicable to any component T.
type Option[T any] func(T)
