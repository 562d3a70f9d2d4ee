package search

import (
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/result"
)

// SummaryOf projects a ranked hit onto the compact response shape.
func SummaryOf(r result.Ranked) domlisting.Summary {
	tags := r.Tags()
	numerics := r.Numerics()

	return domlisting.Summary{
		ID:           r.ID(),
		Name:         r.Name(),
		PropertyType: tags["property_type"],
		RoomType:     tags["room_type"],
		Market:       tags["market"],
		Country:      tags["country"],
		Superhost:    tags["superhost"] == "1",
		Price:        r.Price(),
		Bedrooms:     int(numerics["bedrooms"]),
		Accommodates: int(numerics["accommodates"]),
		Rating:       numerics["rating"],
		Score:        r.Score(),
	}
}

// Summaries projects a fused result list.
func Summaries(results []result.Ranked) []domlisting.Summary {
	out := make([]domlisting.Summary, len(results))
	for i, r := range results {
		out[i] = SummaryOf(r)
	}
	return out
}
