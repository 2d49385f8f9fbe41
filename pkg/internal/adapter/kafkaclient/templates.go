package kafkaclient

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
)

// messageFields flattens a message into its JSON field map.
func messageFields(m StationMessage) map[string]any {
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func renderField(fields map[string]any, placeholder string) (string, bool) {
	ph := strings.TrimSpace(placeholder)
	if !strings.HasPrefix(ph, "{") || !strings.HasSuffix(ph, "}") {
		return "", false
	}
	field := strings.TrimSpace(ph[1 : len(ph)-1])
	if field == "" {
		return "", false
	}
	raw, ok := fields[field]
	if !ok || raw == nil {
		return "", false
	}
	if f, ok := raw.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return fmt.Sprint(raw), true
}

func renderKey(tmpl string, fields map[string]any) []byte {
	t := strings.TrimSpace(tmpl)
	if t == "" {
		return nil
	}
	if val, ok := renderField(fields, t); ok {
		return []byte(val)
	}
	return []byte(t)
}

// renderHeaders renders templated headers in key order.
func renderHeaders(tmpls map[string]string, fields map[string]any) []kafka.Header {
	if len(tmpls) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tmpls))
	for k := range tmpls {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		val := tmpls[k]
		if vv, ok := renderField(fields, val); ok {
			val = vv
		}
		out = append(out, kafka.Header{Key: k, Value: []byte(val)})
	}
	return out
}
