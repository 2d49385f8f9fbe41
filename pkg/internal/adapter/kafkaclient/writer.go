package kafkaclient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// WriterOption adjusts a kafka-go Writer after defaults are applied.
type WriterOption func(*kafka.Writer)

// NewKafkaGoWriter builds a synchronous kafka-go Writer that waits for all
// in-sync replicas.
func NewKafkaGoWriter(brokers []string, topic string, opts ...WriterOption) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           200 * time.Millisecond,
		BatchBytes:             int64(1 << 20),
		BatchSize:              1000,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// NewWriterFromConfig maps cfg onto NewKafkaGoWriter.
func NewWriterFromConfig(cfg types.KafkaWriterConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafka: topic is required")
	}

	opts := []WriterOption{WriterWithRequiredAcks(cfg.Acks)}
	switch strings.ToLower(cfg.PartitionStrategy) {
	case "", "hash":
		opts = append(opts, WriterWithHash())
	case "round_robin":
		opts = append(opts, WriterWithRoundRobin())
	case "least_bytes":
		opts = append(opts, WriterWithLeastBytes())
	default:
		return nil, fmt.Errorf("kafka: unknown partition strategy %q", cfg.PartitionStrategy)
	}
	if cfg.BatchTimeout > 0 {
		opts = append(opts, WriterWithBatchTimeout(cfg.BatchTimeout))
	}
	comp, err := parseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WriterWithCompression(comp))

	if cfg.Security.Enabled() {
		transport, err := NewTransport(cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("kafka: %w", err)
		}
		opts = append(opts, WriterWithTransport(transport))
	}

	return NewKafkaGoWriter(cfg.Brokers, cfg.Topic, opts...), nil
}

func parseCompression(name string) (kafka.Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return 0, nil
	case "gzip":
		return kafka.Gzip, nil
	case "snappy":
		return kafka.Snappy, nil
	case "lz4":
		return kafka.Lz4, nil
	case "zstd":
		return kafka.Zstd, nil
	default:
		return 0, fmt.Errorf("kafka: unknown compression %q", name)
	}
}

func WriterWithRoundRobin() WriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.RoundRobin{} }
}
func WriterWithHash() WriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.Hash{} }
}
func WriterWithLeastBytes() WriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.LeastBytes{} }
}
func WriterWithBatchTimeout(d time.Duration) WriterOption {
	return func(w *kafka.Writer) { w.BatchTimeout = d }
}
func WriterWithCompression(c kafka.Compression) WriterOption {
	return func(w *kafka.Writer) { w.Compression = c }
}
func WriterWithRequiredAcks(mode string) WriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(mode) {
		case "0", "none":
			w.RequiredAcks = kafka.RequireNone
		case "1", "leader":
			w.RequiredAcks = kafka.RequireOne
		default: // "all", "-1"
			w.RequiredAcks = kafka.RequireAll
		}
	}
}
