package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CanonicalID maps any accepted identifier encoding onto one comparable
// key. Numeric forms ("10006546", 10006546, 1.0006546e7) collapse to
// the decimal integer string; anything else is the trimmed string as-is.
// Applied at every identifier-equality boundary: dedup, lookup, and
// tool-call results.
func CanonicalID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// CanonicalIDAny normalizes identifier values as they arrive from
// JSON-decoded tool arguments: string, float64, or json.Number.
func CanonicalIDAny(v any) string {
	switch id := v.(type) {
	case string:
		return CanonicalID(id)
	case json.Number:
		return CanonicalID(id.String())
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
