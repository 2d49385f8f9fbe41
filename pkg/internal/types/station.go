package types

import (
	"maps"
	"sort"
)

// Station is a narrowband signal detected above the noise floor.
type Station struct {
	FreqCenter float64 // Center frequency in Hz.
	Bw         float64 // Bandwidth in Hz.
	PowerDB    float64 // Peak power observed at detection time.
	RelativeDB float64 // Peak power above the noise floor estimate at detection time.
	Name       *string // Set only by manual curation.

	// Extra holds hand-entered catalog fields this package does not interpret.
	// They are written back unchanged when the catalog is saved.
	Extra map[string]any
}

// SortKey is the ordering key used by the catalog: center frequency minus bandwidth.
func (s Station) SortKey() float64 {
	return s.FreqCenter - s.Bw
}

// HasName reports whether the station was curated with a name.
func (s Station) HasName() bool {
	return s.Name != nil && *s.Name != ""
}

// Catalog is the ordered, deduplicated collection of stations for one scan location.
type Catalog struct {
	Stations []Station
}

// Len returns the number of stations.
func (c Catalog) Len() int {
	return len(c.Stations)
}

// Clone returns a catalog that shares no backing storage with c.
func (c Catalog) Clone() Catalog {
	out := Catalog{Stations: make([]Station, len(c.Stations))}
	for i, s := range c.Stations {
		if s.Name != nil {
			name := *s.Name
			s.Name = &name
		}
		if s.Extra != nil {
			s.Extra = maps.Clone(s.Extra)
		}
		out.Stations[i] = s
	}
	return out
}

// Sort orders the stations by SortKey ascending, keeping insertion order for ties.
func (c *Catalog) Sort() {
	sort.SliceStable(c.Stations, func(i, j int) bool {
		return c.Stations[i].SortKey() < c.Stations[j].SortKey()
	})
}

// Covering returns the first station whose window [center-bw, center+bw] contains
// freq, using the supplied bw as the half-width.
func (c Catalog) Covering(freq, bw float64) (Station, bool) {
	for _, s := range c.Stations {
		if s.FreqCenter-bw <= freq && freq <= s.FreqCenter+bw {
			return s, true
		}
	}
	return Station{}, false
}
