// pkg/builder/kafkaclient_adapter.go
package builder

import (
	"crypto/tls"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"

	kafkaClientAdapter "github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type KafkaWriterConfig = types.KafkaWriterConfig

type KafkaSecurity = types.KafkaSecurity

type StationPublisher = types.StationPublisher

////////////////////////
// Publisher constructor
////////////////////////

// NewKafkaPublisher announces discovered stations through writer, usually a
// *kafka.Writer from NewKafkaGoWriter.
func NewKafkaPublisher(writer kafkaClientAdapter.MessageWriter, options ...types.Option[*kafkaClientAdapter.KafkaClient]) *kafkaClientAdapter.KafkaClient {
	return kafkaClientAdapter.NewKafkaClient(writer, options...)
}

// NewNoopPublisher returns a publisher that drops every batch.
func NewNoopPublisher() types.StationPublisher {
	return kafkaClientAdapter.NoopPublisher{}
}

func KafkaPublisherWithLogger(l ...types.Logger) types.Option[*kafkaClientAdapter.KafkaClient] {
	return kafkaClientAdapter.WithLogger(l...)
}

func KafkaPublisherWithName(name string) types.Option[*kafkaClientAdapter.KafkaClient] {
	return kafkaClientAdapter.WithName(name)
}

func KafkaPublisherWithScan(scan string) types.Option[*kafkaClientAdapter.KafkaClient] {
	return kafkaClientAdapter.WithScan(scan)
}

// KafkaPublisherWithKeyTemplate renders message keys from station fields,
// e.g. "{scan}:{freq_center}".
func KafkaPublisherWithKeyTemplate(tmpl string) types.Option[*kafkaClientAdapter.KafkaClient] {
	return kafkaClientAdapter.WithKeyTemplate(tmpl)
}

// KafkaPublisherWithHeaders merges static or templated headers.
func KafkaPublisherWithHeaders(hdrs map[string]string) types.Option[*kafkaClientAdapter.KafkaClient] {
	return kafkaClientAdapter.WithHeaders(hdrs)
}

////////////////////////////////////
// kafka-go writer helpers
////////////////////////////////////

type KafkaGoWriterOption = kafkaClientAdapter.WriterOption

// NewKafkaGoWriter builds a synchronous kafka-go Writer with sane defaults.
func NewKafkaGoWriter(brokers []string, topic string, opts ...KafkaGoWriterOption) *kafka.Writer {
	return kafkaClientAdapter.NewKafkaGoWriter(brokers, topic, opts...)
}

// NewKafkaGoWriterFromConfig maps a writer config, including TLS and SASL,
// onto a kafka-go Writer.
func NewKafkaGoWriterFromConfig(cfg types.KafkaWriterConfig) (*kafka.Writer, error) {
	return kafkaClientAdapter.NewWriterFromConfig(cfg)
}

// NewKafkaGoWriterSecure: NewKafkaGoWriter + Transport(TLS/SASL) in one call.
func NewKafkaGoWriterSecure(brokers []string, topic string, tlsCfg *tls.Config, mech sasl.Mechanism, clientID string, opts ...KafkaGoWriterOption) *kafka.Writer {
	transport := &kafka.Transport{TLS: tlsCfg, SASL: mech, ClientID: clientID}
	opts = append([]KafkaGoWriterOption{kafkaClientAdapter.WriterWithTransport(transport)}, opts...)
	return NewKafkaGoWriter(brokers, topic, opts...)
}

func KafkaGoWriterWithRoundRobin() KafkaGoWriterOption {
	return kafkaClientAdapter.WriterWithRoundRobin()
}
func KafkaGoWriterWithHash() KafkaGoWriterOption {
	return kafkaClientAdapter.WriterWithHash()
}
func KafkaGoWriterWithLeastBytes() KafkaGoWriterOption {
	return kafkaClientAdapter.WriterWithLeastBytes()
}
func KafkaGoWriterWithBatchTimeout(d time.Duration) KafkaGoWriterOption {
	return kafkaClientAdapter.WriterWithBatchTimeout(d)
}
func KafkaGoWriterWithRequiredAcks(mode string) KafkaGoWriterOption {
	return kafkaClientAdapter.WriterWithRequiredAcks(mode)
}

// TLSFromCAFilesStrict loads a strict TLS config (Min TLS1.2) using the first
// existing file path from candidates.
func TLSFromCAFilesStrict(candidates []string, serverName string) (*tls.Config, error) {
	return kafkaClientAdapter.TLSFromCAFiles(candidates, serverName)
}

// SASLSCRAM returns a sasl.Mechanism for kafka-go from a common name.
// Supported: "SCRAM-SHA-256" (default), "SCRAM-SHA-512".
func SASLSCRAM(user, pass, mech string) (sasl.Mechanism, error) {
	return kafkaClientAdapter.SASLSCRAM(user, pass, mech)
}
