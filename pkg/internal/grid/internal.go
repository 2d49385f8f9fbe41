package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"gonum.org/v1/gonum/mat"
)

// Columns preceding the power readings on every capture line.
const headerFields = 6

type subRangeKey struct {
	start, end, step float64
}

type subRange struct {
	key     subRangeKey
	samples int
}

type row struct {
	values  []float64
	lastPos int
}

// builder accumulates parsed lines. Sub-ranges and timestamps keep first-seen order.
type builder struct {
	layout   []subRange
	position map[subRangeKey]int
	times    []string
	rows     map[string]*row
}

func newBuilder() *builder {
	return &builder{
		position: make(map[subRangeKey]int),
		rows:     make(map[string]*row),
	}
}

func (b *builder) addLine(lineNo int, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	fields := splitFields(line)
	if len(fields) < headerFields {
		return &types.MalformedCaptureError{Line: lineNo, Reason: fmt.Sprintf("expected at least %d fields, got %d", headerFields, len(fields))}
	}

	start, err := parseFloat(lineNo, "freq_start", fields[2])
	if err != nil {
		return err
	}
	end, err := parseFloat(lineNo, "freq_end", fields[3])
	if err != nil {
		return err
	}
	step, err := parseFloat(lineNo, "freq_step", fields[4])
	if err != nil {
		return err
	}
	if step <= 0 || end <= start {
		return &types.MalformedCaptureError{Line: lineNo, Reason: fmt.Sprintf("invalid sub-range %g..%g step %g", start, end, step)}
	}

	samples := int(math.Round((end - start) / step))
	if samples <= 0 {
		return &types.MalformedCaptureError{Line: lineNo, Reason: "sub-range holds no samples"}
	}
	readings := fields[headerFields:]
	if len(readings) < samples {
		return &types.MalformedCaptureError{Line: lineNo, Reason: fmt.Sprintf("expected %d power values, got %d", samples, len(readings))}
	}

	key := subRangeKey{start: start, end: end, step: step}
	pos, err := b.place(key, samples)
	if err != nil {
		return err
	}

	ts := fields[0] + " " + fields[1]
	r, ok := b.rows[ts]
	if !ok {
		r = &row{lastPos: -1}
		b.rows[ts] = r
		b.times = append(b.times, ts)
	}
	if pos != r.lastPos+1 {
		return &types.InconsistentGridError{Reason: fmt.Sprintf("line %d: timestamp %q visits sub-range %d after %d", lineNo, ts, pos, r.lastPos)}
	}
	r.lastPos = pos

	for i := 0; i < samples; i++ {
		v, err := parseFloat(lineNo, "power", readings[i])
		if err != nil {
			return err
		}
		r.values = append(r.values, v)
	}
	return nil
}

// place returns the layout position of key, appending it when first seen.
func (b *builder) place(key subRangeKey, samples int) (int, error) {
	if pos, ok := b.position[key]; ok {
		return pos, nil
	}
	if n := len(b.layout); n > 0 {
		prev := b.layout[n-1].key
		if key.step != b.layout[0].key.step {
			return 0, &types.InconsistentGridError{Reason: fmt.Sprintf("sub-range step %g differs from %g", key.step, b.layout[0].key.step)}
		}
		if key.start <= prev.start {
			return 0, &types.InconsistentGridError{Reason: fmt.Sprintf("sub-range starting at %g is not above previous start %g", key.start, prev.start)}
		}
	}
	b.layout = append(b.layout, subRange{key: key, samples: samples})
	b.position[key] = len(b.layout) - 1
	return len(b.layout) - 1, nil
}

func (b *builder) build() (*types.Waterfall, error) {
	if len(b.times) == 0 {
		return nil, &types.EmptySignalError{Reason: "capture holds no readings"}
	}

	first, last := b.layout[0].key, b.layout[len(b.layout)-1].key
	freqStart, freqEnd := first.start, last.end
	cols := int(math.Round((freqEnd - freqStart) / first.step))

	total := 0
	for _, sr := range b.layout {
		total += sr.samples
	}
	if total != cols {
		return nil, &types.InconsistentGridError{Reason: fmt.Sprintf("sub-ranges hold %d samples, span %g..%g at step %g needs %d", total, freqStart, freqEnd, first.step, cols)}
	}

	data := make([]float64, 0, len(b.times)*cols)
	for _, ts := range b.times {
		r := b.rows[ts]
		if len(r.values) != cols {
			return nil, &types.InconsistentGridError{Reason: fmt.Sprintf("timestamp %q has %d values, expected %d", ts, len(r.values), cols)}
		}
		data = append(data, r.values...)
	}

	times := make([]string, len(b.times))
	copy(times, b.times)
	return &types.Waterfall{
		FreqStart: freqStart,
		FreqEnd:   freqEnd,
		FreqStep:  (freqEnd - freqStart) / float64(cols),
		Times:     times,
		Power:     mat.NewDense(len(times), cols, data),
	}, nil
}

func splitFields(line string) []string {
	raw := strings.Split(line, ",")
	out := raw[:0]
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseFloat(lineNo int, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &types.MalformedCaptureError{Line: lineNo, Reason: "invalid " + field, Err: err}
	}
	return v, nil
}
