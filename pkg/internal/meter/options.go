package meter

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// WithLogger attaches loggers to the Meter.
func WithLogger(l ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) {
		m.ConnectLogger(l...)
	}
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[*Meter] {
	return func(m *Meter) {
		m.componentMetadata.Name = name
	}
}

// WithPushgateway enables Push to the gateway at url under job. An empty job
// keeps DefaultJob.
func WithPushgateway(url, job string) types.Option[*Meter] {
	return func(m *Meter) {
		m.pushURL = url
		if job != "" {
			m.job = job
		}
	}
}

// WithGrouping adds a grouping label to pushed metrics.
func WithGrouping(name, value string) types.Option[*Meter] {
	return func(m *Meter) {
		if name != "" && value != "" {
			m.grouping[name] = value
		}
	}
}
