package kafkaclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// TLSFromCAFiles loads a TLS 1.2+ config trusting the first existing CA file in
// candidates. A non-empty serverName is used for SNI and hostname checks.
func TLSFromCAFiles(candidates []string, serverName string) (*tls.Config, error) {
	var picked string
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			picked = p
			break
		}
	}
	if picked == "" {
		return nil, fmt.Errorf("no CA file found in candidates: %v", candidates)
	}
	pem, err := os.ReadFile(filepath.Clean(picked))
	if err != nil {
		return nil, fmt.Errorf("read CA: %w", err)
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("invalid CA PEM at %s", picked)
	}
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    cp,
	}
	if serverName != "" {
		cfg.ServerName = serverName
	}
	return cfg, nil
}

// SASLSCRAM returns a kafka-go SCRAM mechanism.
// Supported: "SCRAM-SHA-256" (default), "SCRAM-SHA-512".
func SASLSCRAM(user, pass, mech string) (sasl.Mechanism, error) {
	switch strings.ToUpper(strings.ReplaceAll(mech, "_", "-")) {
	case "", "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, user, pass)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, user, pass)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", mech)
	}
}

// NewTransport builds a kafka-go Transport from sec.
func NewTransport(sec types.KafkaSecurity) (*kafka.Transport, error) {
	t := &kafka.Transport{ClientID: sec.ClientID}
	if len(sec.CAFiles) > 0 {
		cfg, err := TLSFromCAFiles(sec.CAFiles, sec.ServerName)
		if err != nil {
			return nil, err
		}
		t.TLS = cfg
	}
	if sec.Username != "" {
		mech, err := SASLSCRAM(sec.Username, sec.Password, sec.SASLMechanism)
		if err != nil {
			return nil, err
		}
		t.SASL = mech
	}
	return t, nil
}

// WriterWithTransport sets the writer's Transport.
func WriterWithTransport(t *kafka.Transport) WriterOption {
	return func(w *kafka.Writer) { w.Transport = t }
}
