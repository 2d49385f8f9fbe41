package kafkaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// Publish writes one message per station in a single batch.
func (c *KafkaClient) Publish(ctx context.Context, runID, capture string, stations []types.Station) error {
	if len(stations) == 0 {
		return nil
	}
	if c.writer == nil {
		return errors.New("kafka writer is required")
	}

	at := c.now()
	msgs := make([]kafka.Message, 0, len(stations))
	for _, s := range stations {
		m := newStationMessage(runID, capture, c.scan, s, at)
		val, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode station %g: %w", s.FreqCenter, err)
		}
		fields := messageFields(m)
		msgs = append(msgs, kafka.Message{
			Key:     renderKey(c.keyTemplate, fields),
			Value:   val,
			Headers: renderHeaders(c.headers, fields),
		})
	}

	if err := c.writer.WriteMessages(ctx, msgs...); err != nil {
		c.NotifyLoggers(types.ErrorLevel, "station publish failed",
			logschema.FieldComponent, c.componentMetadata,
			logschema.FieldEvent, "Publish",
			logschema.FieldResult, logschema.ResultFailure,
			logschema.FieldRunID, runID,
			logschema.FieldCapture, capture,
			logschema.FieldError, err,
		)
		return fmt.Errorf("publish %d stations: %w", len(msgs), err)
	}

	c.NotifyLoggers(types.InfoLevel, "stations published",
		logschema.FieldComponent, c.componentMetadata,
		logschema.FieldEvent, "Publish",
		logschema.FieldResult, logschema.ResultSuccess,
		logschema.FieldRunID, runID,
		logschema.FieldCapture, capture,
		"messages", len(msgs),
	)
	return nil
}

// Close flushes and closes the writer.
func (c *KafkaClient) Close() error {
	if c.writer == nil {
		return nil
	}
	return c.writer.Close()
}

// NoopPublisher discards announcements. It stands in when no brokers are configured.
type NoopPublisher struct{}

var _ types.StationPublisher = NoopPublisher{}

// Publish does nothing.
func (NoopPublisher) Publish(context.Context, string, string, []types.Station) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
