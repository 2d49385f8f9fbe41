package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// WithLogger attaches loggers to the client.
func WithLogger(l ...types.Logger) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		c.ConnectLogger(l...)
	}
}

// WithName sets the component name reported in logs.
func WithName(name string) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		c.componentMetadata.Name = name
	}
}

// WithScan labels every message with the scan name.
func WithScan(scan string) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		c.scan = scan
	}
}

// WithKeyTemplate sets the message key: either a literal or a "{field}"
// placeholder naming a StationMessage JSON field.
func WithKeyTemplate(tmpl string) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		c.keyTemplate = tmpl
	}
}

// WithHeaders adds static or "{field}" templated headers to every message.
func WithHeaders(headers map[string]string) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithClock overrides the clock stamping DetectedAt.
func WithClock(now func() time.Time) types.Option[*KafkaClient] {
	return func(c *KafkaClient) {
		if now != nil {
			c.now = now
		}
	}
}
