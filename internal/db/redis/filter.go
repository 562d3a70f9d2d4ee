package redis

import (
	"fmt"
	"strings"

	"github.com/staylens/staylens/internal/domain/search/filter"
)

// buildFilter translates a structured filter into an FT.SEARCH
// pre-filter query string. Every predicate is independently optional;
// an empty filter yields an empty string (match all).
func buildFilter(f filter.Filter) string {
	if f.IsEmpty() {
		return ""
	}

	var parts []string

	if f.PropertyType != "" {
		parts = append(parts, buildTagFilter("property_type", f.PropertyType))
	}
	if f.RoomType != "" {
		parts = append(parts, buildTagFilter("room_type", f.RoomType))
	}
	if f.Country != "" {
		parts = append(parts, buildTagFilter("country", f.Country))
	}
	if f.Market != "" {
		parts = append(parts, buildTagFilter("market", f.Market))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		parts = append(parts, buildRangeFilter("price", f.MinPrice, f.MaxPrice))
	}
	if f.MinBedrooms != nil {
		v := float64(*f.MinBedrooms)
		parts = append(parts, buildRangeFilter("bedrooms", &v, nil))
	}
	if f.MinAccommodates != nil {
		v := float64(*f.MinAccommodates)
		parts = append(parts, buildRangeFilter("accommodates", &v, nil))
	}
	if f.SuperhostOnly {
		parts = append(parts, buildTagFilter("superhost", "1"))
	}

	return strings.Join(parts, " ")
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

func buildRangeFilter(key string, minVal, maxVal *float64) string {
	minBound := "-inf"
	maxBound := "+inf"

	if minVal != nil {
		minBound = fmt.Sprintf("%g", *minVal)
	}
	if maxVal != nil {
		maxBound = fmt.Sprintf("%g", *maxVal)
	}

	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
	"|", "\\|",
	"/", "\\/",
)
