package sensor

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// RegisterOnCaptureAssembled registers callbacks for assembled captures.
func (s *Sensor) RegisterOnCaptureAssembled(callback ...func(types.ComponentMetadata, string, *types.Waterfall)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnCaptureAssembled = append(s.OnCaptureAssembled, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCaptureAssembled invokes registered capture assembled callbacks.
func (s *Sensor) InvokeOnCaptureAssembled(c types.ComponentMetadata, capture string, w *types.Waterfall) {
	s.NotifyLoggers(types.DebugLevel, "capture assembled",
		logschema.FieldComponent, c,
		logschema.FieldEvent, "CaptureAssembled",
		logschema.FieldCapture, capture,
		"rows", w.Rows(),
		"cols", w.Cols(),
	)
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCaptureAssembled) {
		if cb == nil {
			continue
		}
		cb(c, capture, w)
	}
}

// RegisterOnCaptureAnalyzed registers callbacks fired once per capture with its outcome.
func (s *Sensor) RegisterOnCaptureAnalyzed(callback ...func(types.ComponentMetadata, string, error)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnCaptureAnalyzed = append(s.OnCaptureAnalyzed, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCaptureAnalyzed invokes registered capture analyzed callbacks.
func (s *Sensor) InvokeOnCaptureAnalyzed(c types.ComponentMetadata, capture string, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCaptureAnalyzed) {
		if cb == nil {
			continue
		}
		cb(c, capture, err)
	}
}

// RegisterOnSummaryComputed registers callbacks for computed summaries.
func (s *Sensor) RegisterOnSummaryComputed(callback ...func(types.ComponentMetadata, string, types.Summary)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnSummaryComputed = append(s.OnSummaryComputed, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnSummaryComputed invokes registered summary callbacks.
func (s *Sensor) InvokeOnSummaryComputed(c types.ComponentMetadata, capture string, summary types.Summary) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnSummaryComputed) {
		if cb == nil {
			continue
		}
		cb(c, capture, summary)
	}
}
