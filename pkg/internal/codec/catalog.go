package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

// CatalogIndent is the indentation used for catalog documents.
const CatalogIndent = "    "

// Field names of a station entry on disk.
const (
	FieldBw         = "bw"
	FieldFreqCenter = "freq_center"
	FieldFreqLeft   = "freq_left"
	FieldFreqRight  = "freq_right"
	FieldName       = "name"
	FieldPowerDB    = "powerdb"
	FieldRelativeDB = "relativedb"
)

// stationFields are the keys interpreted as station attributes. Any other key,
// including the freq_left/freq_right edge form, is carried in Station.Extra.
var stationFields = []string{FieldBw, FieldFreqCenter, FieldName, FieldPowerDB, FieldRelativeDB}

// Fields are declared in lexical order so the encoder emits sorted keys.
type stationDocument struct {
	Bw         float64 `json:"bw"`
	FreqCenter float64 `json:"freq_center"`
	Name       *string `json:"name,omitempty"`
	PowerDB    float64 `json:"powerdb"`
	RelativeDB float64 `json:"relativedb"`
}

// Stations holds stationDocument values, or maps for stations carrying extra
// fields; encoding/json sorts map keys, so both forms come out sorted.
type catalogDocument struct {
	Stations []any `json:"stations"`
}

// CatalogJSON reads and writes the catalog document
// {"stations": [{bw, freq_center, name?, powerdb, relativedb}, ...]}.
type CatalogJSON struct{}

var (
	_ Encoder[types.Catalog] = CatalogJSON{}
	_ Decoder[types.Catalog] = CatalogJSON{}
)

// Encode writes c to w.
func (CatalogJSON) Encode(w io.Writer, c types.Catalog) error {
	data, err := EncodeCatalog(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a catalog from r.
func (CatalogJSON) Decode(r io.Reader) (types.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Catalog{}, err
	}
	return DecodeCatalog(data)
}

// EncodeCatalog renders c with sorted keys and four-space indentation, followed by a newline.
func EncodeCatalog(c types.Catalog) ([]byte, error) {
	doc := catalogDocument{Stations: make([]any, 0, len(c.Stations))}
	for _, s := range c.Stations {
		doc.Stations = append(doc.Stations, encodeStation(s))
	}
	data, err := json.MarshalIndent(doc, "", CatalogIndent)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}

func encodeStation(s types.Station) any {
	if len(s.Extra) == 0 {
		return stationDocument{
			Bw:         s.Bw,
			FreqCenter: s.FreqCenter,
			Name:       s.Name,
			PowerDB:    s.PowerDB,
			RelativeDB: s.RelativeDB,
		}
	}
	entry := make(map[string]any, len(s.Extra)+len(stationFields))
	for k, v := range s.Extra {
		if !utils.Contains(stationFields, k) {
			entry[k] = v
		}
	}
	entry[FieldBw] = s.Bw
	entry[FieldFreqCenter] = s.FreqCenter
	entry[FieldPowerDB] = s.PowerDB
	entry[FieldRelativeDB] = s.RelativeDB
	if s.Name != nil {
		entry[FieldName] = *s.Name
	}
	return entry
}

// DecodeCatalog parses a catalog document. An empty document or one without a
// "stations" key is an empty catalog. Unknown fields are kept in Station.Extra, numeric fields
// may be unit strings ("3k", "1.2M"), and stations described by freq_left and
// freq_right are normalized to a center and bandwidth. Station order is preserved.
func DecodeCatalog(data []byte) (types.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return types.Catalog{}, nil
	}

	var raw struct {
		Stations []map[string]interface{} `json:"stations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	out := types.Catalog{Stations: make([]types.Station, 0, len(raw.Stations))}
	for i, entry := range raw.Stations {
		s, err := decodeStation(entry)
		if err != nil {
			return types.Catalog{}, fmt.Errorf("decode catalog: station %d: %w", i, err)
		}
		out.Stations = append(out.Stations, s)
	}
	return out, nil
}

func decodeStation(entry map[string]interface{}) (types.Station, error) {
	var s types.Station

	center, hasCenter, err := numberField(entry, FieldFreqCenter)
	if err != nil {
		return s, err
	}
	bw, hasBw, err := numberField(entry, FieldBw)
	if err != nil {
		return s, err
	}
	left, hasLeft, err := numberField(entry, FieldFreqLeft)
	if err != nil {
		return s, err
	}
	right, hasRight, err := numberField(entry, FieldFreqRight)
	if err != nil {
		return s, err
	}

	if hasLeft && hasRight {
		if right < left {
			return s, fmt.Errorf("%s %g below %s %g", FieldFreqRight, right, FieldFreqLeft, left)
		}
		if !hasCenter {
			center, hasCenter = left+(right-left)/2, true
		}
		if !hasBw {
			bw, hasBw = right-left, true
		}
	}
	if !hasCenter {
		return s, fmt.Errorf("missing %s", FieldFreqCenter)
	}
	if !hasBw {
		return s, fmt.Errorf("missing %s", FieldBw)
	}
	s.FreqCenter = center
	s.Bw = bw

	if s.PowerDB, _, err = numberField(entry, FieldPowerDB); err != nil {
		return s, err
	}
	if s.RelativeDB, _, err = numberField(entry, FieldRelativeDB); err != nil {
		return s, err
	}

	switch name := entry[FieldName].(type) {
	case nil:
	case string:
		s.Name = &name
	default:
		return s, fmt.Errorf("%s must be a string, got %T", FieldName, name)
	}

	for k, v := range entry {
		if utils.Contains(stationFields, k) {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[k] = v
	}
	return s, nil
}

// numberField reads an optional numeric field. Absent and null values report ok=false.
func numberField(entry map[string]interface{}, key string) (float64, bool, error) {
	v, ok := entry[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, err := utils.HzValue(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return f, true, nil
}
