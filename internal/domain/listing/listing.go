// Package listing holds the rental listing record and its response projections.
package listing

import (
	"fmt"

	"github.com/staylens/staylens/internal/domain"
)

// Address is the listing location sub-record.
type Address struct {
	Street  string `json:"street,omitempty"`
	Market  string `json:"market,omitempty"`
	Country string `json:"country,omitempty"`
}

// Host is the listing owner sub-record.
type Host struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Superhost bool   `json:"superhost"`
}

// ReviewScores is the review aggregate sub-record.
type ReviewScores struct {
	Rating float64 `json:"rating,omitempty"`
	Count  int     `json:"count,omitempty"`
}

// Listing is a rental record. Created by bulk ingestion, read-mostly
// thereafter. The vector is computed once from Name+Description.
type Listing struct {
	ID              string
	Name            string
	Description     string
	PropertyType    string
	RoomType        string
	Price           float64
	Bedrooms        int
	Bathrooms       float64
	Accommodates    int
	InstantBookable bool
	Amenities       []string
	Address         Address
	Host            Host
	ReviewScores    ReviewScores
	Vector          []float32
}

// Validate checks record invariants before storage.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: listing id is required", domain.ErrValidation)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: listing name is required", domain.ErrValidation)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

// Content is the descriptive text the listing vector is computed from.
func (l *Listing) Content() string {
	if l.Description == "" {
		return l.Name
	}
	return l.Name + "\n" + l.Description
}

// Summary is the compact projection returned by search. It never carries
// the full description or the vector.
type Summary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PropertyType string  `json:"property_type,omitempty"`
	RoomType     string  `json:"room_type,omitempty"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	Accommodates int     `json:"accommodates"`
	Market       string  `json:"market,omitempty"`
	Country      string  `json:"country,omitempty"`
	Superhost    bool    `json:"superhost"`
	Rating       float64 `json:"rating,omitempty"`
	Score        float64 `json:"score"`
}

// Detail is the full projection returned by detail fetch. The vector is
// never exposed.
type Detail struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	PropertyType    string       `json:"property_type,omitempty"`
	RoomType        string       `json:"room_type,omitempty"`
	Price           float64      `json:"price"`
	Bedrooms        int          `json:"bedrooms"`
	Bathrooms       float64      `json:"bathrooms"`
	Accommodates    int          `json:"accommodates"`
	InstantBookable bool         `json:"instant_bookable"`
	Amenities       []string     `json:"amenities,omitempty"`
	Address         Address      `json:"address"`
	Host            Host         `json:"host"`
	ReviewScores    ReviewScores `json:"review_scores"`
}

// ToDetail builds the full projection from a listing record.
func (l *Listing) ToDetail() Detail {
	return Detail{
		ID:              l.ID,
		Name:            l.Name,
		Description:     l.Description,
		PropertyType:    l.PropertyType,
		RoomType:        l.RoomType,
		Price:           l.Price,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		Accommodates:    l.Accommodates,
		InstantBookable: l.InstantBookable,
		Amenities:       l.Amenities,
		Address:         l.Address,
		Host:            l.Host,
		ReviewScores:    l.ReviewScores,
	}
}
