package kafkaclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) (string, bool) {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}

func TestPublish(t *testing.T) {
	w := &recordingWriter{}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := kafkaclient.NewKafkaClient(w,
		kafkaclient.WithScan("fm"),
		kafkaclient.WithClock(func() time.Time { return at }),
		kafkaclient.WithHeaders(map[string]string{"source": "sdrhunter", "band": "{scan}"}),
	)

	stations := []types.Station{
		{FreqCenter: 105e6, Bw: 10e3, PowerDB: -60, RelativeDB: 30},
		{FreqCenter: 433.92e6, Bw: 12.5e3, PowerDB: -70.5, RelativeDB: 18},
	}
	if err := c.Publish(context.Background(), "run-1", "capture.csv", stations); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(w.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(w.msgs))
	}

	m := w.msgs[0]
	if string(m.Key) != "105000000" {
		t.Fatalf("unexpected key %q", m.Key)
	}
	for k, want := range map[string]string{"run_id": "run-1", "capture": "capture.csv", "source": "sdrhunter", "band": "fm"} {
		if got, ok := header(m, k); !ok || got != want {
			t.Fatalf("header %s = %q, want %q", k, got, want)
		}
	}

	var msg kafkaclient.StationMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Event != kafkaclient.EventStationDiscovered || msg.RunID != "run-1" || msg.Scan != "fm" {
		t.Fatalf("unexpected envelope %+v", msg)
	}
	if msg.FreqCenter != 105e6 || msg.Bw != 10e3 || msg.PowerDB != -60 || msg.RelativeDB != 30 {
		t.Fatalf("unexpected station fields %+v", msg)
	}
	if !msg.DetectedAt.Equal(at) {
		t.Fatalf("unexpected timestamp %v", msg.DetectedAt)
	}
	if string(w.msgs[1].Key) != "433920000" {
		t.Fatalf("unexpected second key %q", w.msgs[1].Key)
	}

	if err := c.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer to be closed, got %v", err)
	}
}

func TestPublishLiteralKeyAndEmptyBatch(t *testing.T) {
	w := &recordingWriter{}
	c := kafkaclient.NewKafkaClient(w, kafkaclient.WithKeyTemplate("stations"))

	if err := c.Publish(context.Background(), "run", "c", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(w.msgs) != 0 {
		t.Fatal("empty batch must not write")
	}

	if err := c.Publish(context.Background(), "run", "c", []types.Station{{FreqCenter: 1, Bw: 1}}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if string(w.msgs[0].Key) != "stations" {
		t.Fatalf("expected literal key, got %q", w.msgs[0].Key)
	}
}

func TestPublishError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	c := kafkaclient.NewKafkaClient(w)
	err := c.Publish(context.Background(), "run", "c", []types.Station{{FreqCenter: 1, Bw: 1}})
	if err == nil || !errors.Is(err, w.err) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}

	if err := kafkaclient.NewKafkaClient(nil).Publish(context.Background(), "r", "c", []types.Station{{}}); err == nil {
		t.Fatal("expected error without writer")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p types.StationPublisher = kafkaclient.NoopPublisher{}
	if err := p.Publish(context.Background(), "r", "c", []types.Station{{}}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewWriterFromConfig(t *testing.T) {
	w, err := kafkaclient.NewWriterFromConfig(types.KafkaWriterConfig{
		Brokers:           []string{"broker-1:9092"},
		Topic:             "stations",
		Acks:              "1",
		BatchTimeout:      50 * time.Millisecond,
		PartitionStrategy: "round_robin",
		Compression:       "zstd",
	})
	if err != nil {
		t.Fatalf("NewWriterFromConfig: %v", err)
	}
	if w.Topic != "stations" || w.RequiredAcks != kafka.RequireOne || w.BatchTimeout != 50*time.Millisecond {
		t.Fatalf("unexpected writer settings %+v", w)
	}
	if _, ok := w.Balancer.(*kafka.RoundRobin); !ok {
		t.Fatalf("expected round robin balancer, got %T", w.Balancer)
	}
	if w.Compression != kafka.Zstd {
		t.Fatalf("expected zstd compression, got %v", w.Compression)
	}

	def := kafkaclient.NewKafkaGoWriter([]string{"b:9092"}, "t")
	if def.RequiredAcks != kafka.RequireAll || def.Async {
		t.Fatal("expected synchronous writer acknowledged by all replicas")
	}
	if _, ok := def.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("expected hash balancer, got %T", def.Balancer)
	}
}

func TestNewWriterFromConfigErrors(t *testing.T) {
	cases := map[string]types.KafkaWriterConfig{
		"no brokers":   {Topic: "t"},
		"no topic":     {Brokers: []string{"b"}},
		"bad strategy": {Brokers: []string{"b"}, Topic: "t", PartitionStrategy: "sticky"},
		"bad codec":    {Brokers: []string{"b"}, Topic: "t", Compression: "rar"},
	}
	for name, cfg := range cases {
		if _, err := kafkaclient.NewWriterFromConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestNewWriterFromConfigSecurity(t *testing.T) {
	w, err := kafkaclient.NewWriterFromConfig(types.KafkaWriterConfig{
		Brokers: []string{"b:9092"},
		Topic:   "t",
		Security: types.KafkaSecurity{
			Username:      "sdr",
			Password:      "secret",
			SASLMechanism: "scram_sha_512",
			ClientID:      "sdrhunter",
		},
	})
	if err != nil {
		t.Fatalf("NewWriterFromConfig: %v", err)
	}
	tr, ok := w.Transport.(*kafka.Transport)
	if !ok {
		t.Fatalf("expected a kafka.Transport, got %T", w.Transport)
	}
	if tr.SASL == nil || tr.SASL.Name() != "SCRAM-SHA-512" || tr.ClientID != "sdrhunter" {
		t.Fatalf("unexpected transport %+v", tr)
	}

	if _, err := kafkaclient.SASLSCRAM("u", "p", "PLAIN"); err == nil {
		t.Fatal("expected unsupported mechanism error")
	}
}

func TestTLSFromCAFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := kafkaclient.TLSFromCAFiles([]string{filepath.Join(dir, "absent.pem")}, ""); err == nil {
		t.Fatal("expected error when no CA file exists")
	}

	bad := filepath.Join(dir, "bad.pem")
	if err := os.WriteFile(bad, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := kafkaclient.TLSFromCAFiles([]string{filepath.Join(dir, "absent.pem"), bad}, "kafka"); err == nil {
		t.Fatal("expected invalid PEM error")
	}

	_, err := kafkaclient.NewWriterFromConfig(types.KafkaWriterConfig{
		Brokers:  []string{"b:9092"},
		Topic:    "t",
		Security: types.KafkaSecurity{CAFiles: []string{bad}},
	})
	if err == nil {
		t.Fatal("expected TLS setup error to surface")
	}
}
