package types

import "time"

// KafkaWriterConfig controls how discovered stations are announced on Kafka.
type KafkaWriterConfig struct {
	Brokers []string // e.g. []{"broker-1:9092","broker-2:9092"}
	Topic   string   // required

	// Producer delivery semantics
	Acks              string        // "", "0", "1", "all"
	BatchTimeout      time.Duration // kafka-go batch flush timeout
	PartitionStrategy string        // "", "hash", "round_robin", "least_bytes"
	Compression       string        // "", "gzip", "snappy", "lz4", "zstd"

	// Static headers attached to every message in addition to run_id and capture.
	Headers map[string]string

	Security KafkaSecurity
}

// KafkaSecurity holds optional TLS and SASL/SCRAM settings for the broker connection.
type KafkaSecurity struct {
	CAFiles       []string // first existing file is used as the root CA bundle
	ServerName    string
	SASLMechanism string // "SCRAM-SHA-256" (default when a user is set) or "SCRAM-SHA-512"
	Username      string
	Password      string
	ClientID      string
}

// Enabled reports whether any transport setting differs from the kafka-go default.
func (s KafkaSecurity) Enabled() bool {
	return len(s.CAFiles) > 0 || s.Username != "" || s.ClientID != ""
}
