package sensor

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

func (s *Sensor) decorateMeterCallbacks() {
	s.RegisterOnCaptureAnalyzed(func(_ types.ComponentMetadata, capture string, err error) {
		for _, m := range s.GetMeters() {
			m.RecordCapture(capture, err)
		}
	})
	s.RegisterOnSummaryComputed(func(_ types.ComponentMetadata, capture string, summary types.Summary) {
		if summary.Kind != types.KindMax {
			return
		}
		for _, m := range s.GetMeters() {
			m.RecordNoiseFloor(capture, summary.NoiseFloor())
		}
	})
	s.RegisterOnStationAccepted(func(types.ComponentMetadata, types.Station, float64) {
		for _, m := range s.GetMeters() {
			m.RecordCandidate(types.CandidateAccepted)
		}
	})
	s.RegisterOnStationDuplicate(func(types.ComponentMetadata, types.Station, types.Station) {
		for _, m := range s.GetMeters() {
			m.RecordCandidate(types.CandidateDuplicate)
		}
	})
	s.RegisterOnCandidateRejected(func(_ types.ComponentMetadata, _ types.Station, _ float64, reason string) {
		for _, m := range s.GetMeters() {
			m.RecordCandidate(reason)
		}
	})
	s.RegisterOnCatalogSaved(func(_ types.ComponentMetadata, _ string, size int) {
		for _, m := range s.GetMeters() {
			m.RecordCatalogSize(size)
		}
	})
	s.RegisterOnStageComplete(func(_ types.ComponentMetadata, stage string, d time.Duration) {
		for _, m := range s.GetMeters() {
			m.RecordStage(stage, d)
		}
	})
}
