package sensor

import "github.com/joeydtaylor/sdrhunter/pkg/internal/types"

// ConnectLogger registers loggers for sensor output.
func (s *Sensor) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, logger := range loggers {
		if logger != nil {
			s.loggers = append(s.loggers, logger)
		}
	}
}

// ConnectMeter registers meters updated from sensor callbacks.
func (s *Sensor) ConnectMeter(meters ...types.Meter) {
	s.metersLock.Lock()
	defer s.metersLock.Unlock()
	for _, m := range meters {
		if m != nil {
			s.meters = append(s.meters, m)
		}
	}
}

// GetComponentMetadata returns the sensor's identity.
func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// GetMeters returns the connected meters.
func (s *Sensor) GetMeters() []types.Meter {
	return snapshotCallbacks(&s.metersLock, s.meters)
}
