package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// EventStationDiscovered is the Event of every StationMessage.
const EventStationDiscovered = "station.discovered"

// StationMessage is the JSON payload announcing one new station.
type StationMessage struct {
	Event      string    `json:"event"`
	RunID      string    `json:"run_id"`
	Capture    string    `json:"capture"`
	Scan       string    `json:"scan,omitempty"`
	FreqCenter float64   `json:"freq_center"`
	Bw         float64   `json:"bw"`
	PowerDB    float64   `json:"powerdb"`
	RelativeDB float64   `json:"relativedb"`
	Name       *string   `json:"name,omitempty"`
	DetectedAt time.Time `json:"detected_at"`
}

func newStationMessage(runID, capture, scan string, s types.Station, at time.Time) StationMessage {
	return StationMessage{
		Event:      EventStationDiscovered,
		RunID:      runID,
		Capture:    capture,
		Scan:       scan,
		FreqCenter: s.FreqCenter,
		Bw:         s.Bw,
		PowerDB:    s.PowerDB,
		RelativeDB: s.RelativeDB,
		Name:       s.Name,
		DetectedAt: at.UTC(),
	}
}
