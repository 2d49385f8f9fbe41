package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/builder"
)

const (
	brokersCSV   = "127.0.0.1:19092" // TLS+SASL listener from compose
	topic        = "sdrhunter-stations"
	clientID     = "sdrhunter-producer"
	batchTimeout = 400 * time.Millisecond

	tlsServerName = "localhost"
	caCandidates  = "../tls/ca.crt"

	saslUser = "app"
	saslPass = "app-secret"
	saslMech = "SCRAM-SHA-256"
)

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fail(err error) {
	_ = json.NewEncoder(os.Stdout).Encode(map[string]any{"error": err.Error()})
	os.Exit(1)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	tlsCfg, err := builder.TLSFromCAFilesStrict(splitCSV(caCandidates), tlsServerName)
	if err != nil {
		fail(err)
	}
	mech, err := builder.SASLSCRAM(saslUser, saslPass, saslMech)
	if err != nil {
		fail(err)
	}

	kw := builder.NewKafkaGoWriterSecure(
		splitCSV(brokersCSV),
		topic,
		tlsCfg,
		mech,
		clientID,
		builder.KafkaGoWriterWithHash(),
		builder.KafkaGoWriterWithBatchTimeout(batchTimeout),
	)

	log := builder.NewLogger(builder.LoggerWithDevelopment(true))
	pub := builder.NewKafkaPublisher(kw,
		builder.KafkaPublisherWithLogger(log),
		builder.KafkaPublisherWithScan("fm"),
		builder.KafkaPublisherWithKeyTemplate("{freq_center}"),
		builder.KafkaPublisherWithHeaders(map[string]string{"source": "demo-producer", "scan": "{scan}"}),
	)
	defer pub.Close()

	stations := []builder.Station{
		{FreqCenter: 89.1e6, Bw: 150e3, PowerDB: -42.5, RelativeDB: 21.3},
		{FreqCenter: 94.8e6, Bw: 200e3, PowerDB: -38.1, RelativeDB: 25.9},
	}
	if err := pub.Publish(ctx, "demo-run", "88Mhz-108Mhz-4577-10i-300q.csv", stations); err != nil {
		fail(err)
	}
}
