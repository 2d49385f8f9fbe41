package meter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// RecordCapture counts one analyzed capture.
func (m *Meter) RecordCapture(_ string, err error) {
	result := types.ResultSuccess
	if err != nil {
		result = types.ResultFailure
	}
	m.captures.WithLabelValues(result).Inc()
}

// RecordNoiseFloor sets the noise floor gauge of capture.
func (m *Meter) RecordNoiseFloor(capture string, db float64) {
	m.noiseFloor.WithLabelValues(capture).Set(db)
}

// RecordCandidate counts one detector decision. Accepted candidates also count
// as detected stations.
func (m *Meter) RecordCandidate(outcome string) {
	m.candidates.WithLabelValues(outcome).Inc()
	if outcome == types.CandidateAccepted {
		m.stationsDetected.Inc()
	}
}

// RecordCatalogSize sets the catalog size gauge.
func (m *Meter) RecordCatalogSize(n int) {
	m.catalogSize.Set(float64(n))
}

// RecordStage observes the duration of a pipeline stage.
func (m *Meter) RecordStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Push sends the registry to the configured Pushgateway. It is a no-op when no
// gateway is configured.
func (m *Meter) Push(ctx context.Context) error {
	if m.pushURL == "" {
		return nil
	}

	pusher := push.New(m.pushURL, m.job).Gatherer(m.registry)
	names := make([]string, 0, len(m.grouping))
	for k := range m.grouping {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		pusher = pusher.Grouping(k, m.grouping[k])
	}

	if err := pusher.PushContext(ctx); err != nil {
		err = fmt.Errorf("push metrics to %s: %w", m.pushURL, err)
		m.NotifyLoggers(types.WarnLevel, "metrics push failed",
			logschema.FieldComponent, m.componentMetadata,
			logschema.FieldEvent, "Push",
			logschema.FieldResult, logschema.ResultFailure,
			logschema.FieldError, err,
		)
		return err
	}
	m.NotifyLoggers(types.DebugLevel, "metrics pushed",
		logschema.FieldComponent, m.componentMetadata,
		logschema.FieldEvent, "Push",
		logschema.FieldResult, logschema.ResultSuccess,
		"url", m.pushURL,
		"job", m.job,
	)
	return nil
}
