// Package kafkaclient announces newly discovered stations on a Kafka topic, one
// JSON message per station.
package kafkaclient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// MessageWriter is the subset of *kafka.Writer used by the client.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultKeyTemplate keys messages by center frequency so that repeated
// announcements of one station land on one partition.
const DefaultKeyTemplate = "{freq_center}"

// KafkaClient publishes StationMessages through a MessageWriter.
type KafkaClient struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex

	writer      MessageWriter
	scan        string
	keyTemplate string
	headers     map[string]string
	now         func() time.Time
}

var _ types.StationPublisher = (*KafkaClient)(nil)

// NewKafkaClient wraps writer.
func NewKafkaClient(writer MessageWriter, options ...types.Option[*KafkaClient]) *KafkaClient {
	c := &KafkaClient{
		componentMetadata: types.ComponentMetadata{
			ID:   uuid.NewString(),
			Type: "KAFKA_CLIENT",
		},
		writer:      writer,
		keyTemplate: DefaultKeyTemplate,
		headers: map[string]string{
			"run_id":  "{run_id}",
			"capture": "{capture}",
		},
		now: time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// GetComponentMetadata returns the client metadata.
func (c *KafkaClient) GetComponentMetadata() types.ComponentMetadata { return c.componentMetadata }
