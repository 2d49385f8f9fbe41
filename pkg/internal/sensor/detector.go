package sensor

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// RegisterOnThreshold registers callbacks fired as the detector starts each threshold level.
func (s *Sensor) RegisterOnThreshold(callback ...func(types.ComponentMetadata, int, float64)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnThreshold = append(s.OnThreshold, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnThreshold invokes registered threshold callbacks.
func (s *Sensor) InvokeOnThreshold(c types.ComponentMetadata, level int, threshold float64) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnThreshold) {
		if cb == nil {
			continue
		}
		cb(c, level, threshold)
	}
}

// RegisterOnStationAccepted registers callbacks for stations added to the catalog.
func (s *Sensor) RegisterOnStationAccepted(callback ...func(types.ComponentMetadata, types.Station, float64)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStationAccepted = append(s.OnStationAccepted, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStationAccepted invokes registered station accepted callbacks.
func (s *Sensor) InvokeOnStationAccepted(c types.ComponentMetadata, station types.Station, threshold float64) {
	s.NotifyLoggers(types.InfoLevel, "station accepted",
		logschema.FieldComponent, c,
		logschema.FieldEvent, "StationAccepted",
		logschema.FieldFrequency, station.FreqCenter,
		logschema.FieldBandwidth, station.Bw,
		logschema.FieldThreshold, threshold,
	)
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStationAccepted) {
		if cb == nil {
			continue
		}
		cb(c, station, threshold)
	}
}

// RegisterOnStationDuplicate registers callbacks for candidates already covered by the catalog.
func (s *Sensor) RegisterOnStationDuplicate(callback ...func(types.ComponentMetadata, types.Station, types.Station)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStationDuplicate = append(s.OnStationDuplicate, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStationDuplicate invokes registered duplicate callbacks.
func (s *Sensor) InvokeOnStationDuplicate(c types.ComponentMetadata, candidate, existing types.Station) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStationDuplicate) {
		if cb == nil {
			continue
		}
		cb(c, candidate, existing)
	}
}

// RegisterOnCandidateRejected registers callbacks for candidates failing the scan bounds.
func (s *Sensor) RegisterOnCandidateRejected(callback ...func(types.ComponentMetadata, types.Station, float64, string)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnCandidateRejected = append(s.OnCandidateRejected, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCandidateRejected invokes registered rejection callbacks.
func (s *Sensor) InvokeOnCandidateRejected(c types.ComponentMetadata, candidate types.Station, threshold float64, reason string) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCandidateRejected) {
		if cb == nil {
			continue
		}
		cb(c, candidate, threshold, reason)
	}
}
