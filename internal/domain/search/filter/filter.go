// Package filter defines the structured search filter applied to both
// retrieval strategies.
package filter

import "fmt"

// Filter is a value object of independently optional listing
// predicates. A zero Filter matches everything. Immutable once
// constructed for a given retrieval call.
type Filter struct {
	PropertyType    string   `json:"property_type,omitempty"`
	RoomType        string   `json:"room_type,omitempty"`
	Country         string   `json:"country,omitempty"`
	Market          string   `json:"market,omitempty"`
	MinPrice        *float64 `json:"min_price,omitempty"`
	MaxPrice        *float64 `json:"max_price,omitempty"`
	MinBedrooms     *int     `json:"min_bedrooms,omitempty"`
	MinAccommodates *int     `json:"min_accommodates,omitempty"`
	SuperhostOnly   bool     `json:"superhost_only,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f.PropertyType == "" && f.RoomType == "" &&
		f.Country == "" && f.Market == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinBedrooms == nil && f.MinAccommodates == nil &&
		!f.SuperhostOnly
}

// Validate checks predicate values. A contradictory price range
// (min > max) is allowed and simply matches nothing.
func (f Filter) Validate() error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("min_price must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("max_price must not be negative")
	}
	if f.MinBedrooms != nil && *f.MinBedrooms < 0 {
		return fmt.Errorf("min_bedrooms must not be negative")
	}
	if f.MinAccommodates != nil && *f.MinAccommodates < 0 {
		return fmt.Errorf("min_accommodates must not be negative")
	}
	return nil
}
