// Package export writes column summaries and the station catalog as Parquet
// files, locally or to S3, for offline analysis.
package export

import (
	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// SummaryRow is one frequency bin of one summary kind.
type SummaryRow struct {
	Capture  string  `parquet:"capture"`
	Kind     string  `parquet:"kind"`
	Bin      int64   `parquet:"bin"`
	FreqHz   float64 `parquet:"freq_hz"`
	Value    float64 `parquet:"value"`
	Smoothed float64 `parquet:"smoothed"`
}

// StationRow is one catalog entry.
type StationRow struct {
	FreqCenter float64 `parquet:"freq_center"`
	Bw         float64 `parquet:"bw"`
	PowerDB    float64 `parquet:"powerdb"`
	RelativeDB float64 `parquet:"relativedb"`
	Name       *string `parquet:"name,optional"`
}

// SummaryRows flattens the bundle, kind by kind in SummaryKinds order.
func SummaryRows(capture string, bundle types.SummaryBundle) []SummaryRow {
	var n int
	for _, s := range bundle.All() {
		n += len(s.Signal)
	}
	rows := make([]SummaryRow, 0, n)
	for _, s := range bundle.All() {
		for i, v := range s.Signal {
			row := SummaryRow{
				Capture: capture,
				Kind:    string(s.Kind),
				Bin:     int64(i),
				FreqHz:  bundle.FreqStart + float64(i)*bundle.FreqStep,
				Value:   v,
			}
			if i < len(s.Smoothed) {
				row.Smoothed = s.Smoothed[i]
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// StationRows converts the catalog in its current order.
func StationRows(c types.Catalog) []StationRow {
	rows := make([]StationRow, len(c.Stations))
	for i, s := range c.Stations {
		rows[i] = StationRow{
			FreqCenter: s.FreqCenter,
			Bw:         s.Bw,
			PowerDB:    s.PowerDB,
			RelativeDB: s.RelativeDB,
		}
		if s.HasName() {
			name := *s.Name
			rows[i].Name = &name
		}
	}
	return rows
}
