package listing

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/staylens/staylens/internal/db"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/result"
)

const amenitySeparator = ","

// buildHashFields flattens a listing into the hash representation the
// FT index is defined over. Booleans become "1"/"0" tag values.
func buildHashFields(l *domlisting.Listing) map[string]string {
	fields := map[string]string{
		"__content":        l.Content(),
		"name":             l.Name,
		"description":      l.Description,
		"property_type":    l.PropertyType,
		"room_type":        l.RoomType,
		"price":            formatFloat(l.Price),
		"bedrooms":         strconv.Itoa(l.Bedrooms),
		"bathrooms":        formatFloat(l.Bathrooms),
		"accommodates":     strconv.Itoa(l.Accommodates),
		"instant_bookable": formatBool(l.InstantBookable),
		"amenities":        strings.Join(l.Amenities, amenitySeparator),
		"street":           l.Address.Street,
		"market":           l.Address.Market,
		"country":          l.Address.Country,
		"host_id":          l.Host.ID,
		"host_name":        l.Host.Name,
		"superhost":        formatBool(l.Host.Superhost),
		"rating":           formatFloat(l.ReviewScores.Rating),
		"review_count":     strconv.Itoa(l.ReviewScores.Count),
	}
	if len(l.Vector) > 0 {
		fields["__vector"] = string(vectorToBytes(l.Vector))
	}
	return fields
}

// parseHashFields rebuilds a listing from its hash representation.
func parseHashFields(id string, fields map[string]string) *domlisting.Listing {
	l := &domlisting.Listing{
		ID:              id,
		Name:            fields["name"],
		Description:     fields["description"],
		PropertyType:    fields["property_type"],
		RoomType:        fields["room_type"],
		Price:           parseFloat(fields["price"]),
		Bedrooms:        parseInt(fields["bedrooms"]),
		Bathrooms:       parseFloat(fields["bathrooms"]),
		Accommodates:    parseInt(fields["accommodates"]),
		InstantBookable: fields["instant_bookable"] == "1",
	}
	if raw := fields["amenities"]; raw != "" {
		l.Amenities = strings.Split(raw, amenitySeparator)
	}
	l.Address.Street = fields["street"]
	l.Address.Market = fields["market"]
	l.Address.Country = fields["country"]
	l.Host.ID = fields["host_id"]
	l.Host.Name = fields["host_name"]
	l.Host.Superhost = fields["superhost"] == "1"
	l.ReviewScores.Rating = parseFloat(fields["rating"])
	l.ReviewScores.Count = parseInt(fields["review_count"])
	if raw := fields["__vector"]; raw != "" {
		l.Vector = bytesToVector([]byte(raw))
	}
	return l
}

// parseSearchEntries converts raw index hits into ranked results with
// canonical identifiers and the strategy that produced them.
func parseSearchEntries(sr *db.SearchResult, strategy result.Strategy) []result.Ranked {
	ranked := make([]result.Ranked, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := domlisting.CanonicalID(strings.TrimPrefix(e.Key, keyPrefix))

		tags := map[string]string{}
		for _, f := range []string{"property_type", "room_type", "market", "country", "superhost"} {
			if v, ok := e.Fields[f]; ok && v != "" {
				tags[f] = v
			}
		}
		numerics := map[string]float64{}
		for _, f := range []string{"bedrooms", "accommodates", "rating"} {
			if v, ok := e.Fields[f]; ok && v != "" {
				numerics[f] = parseFloat(v)
			}
		}

		ranked = append(ranked, result.New(
			id, e.Score, strategy,
			e.Fields["name"], parseFloat(e.Fields["price"]),
			tags, numerics,
		))
	}
	return ranked
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
