package sdk

import (
	"context"

	"github.com/staylens/staylens/internal/domain"
	domchat "github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
)

// Embedder is the public text vectorization contract.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Filter narrows a search to listings matching every set predicate.
// The zero Filter matches everything.
type Filter struct {
	PropertyType    string
	RoomType        string
	Country         string
	Market          string
	MinPrice        *float64
	MaxPrice        *float64
	MinBedrooms     *int
	MinAccommodates *int
	SuperhostOnly   bool
}

// Summary is one ranked search hit.
type Summary struct {
	ID           string
	Name         string
	PropertyType string
	RoomType     string
	Price        float64
	Bedrooms     int
	Accommodates int
	Market       string
	Country      string
	Superhost    bool
	Rating       float64
	Score        float64
}

// SearchResult is a ranked result page plus the strategy that
// produced it ("hybrid" normally, "lexical" in degraded mode).
type SearchResult struct {
	Results  []Summary
	Strategy string
}

// Detail is the full listing projection.
type Detail = domlisting.Detail

// Listing is a rental record for ingestion. The vector is computed
// by the client during upsert.
type Listing = domlisting.Listing

// ChatReply is one completed chat round.
type ChatReply struct {
	SessionID        string
	Reply            string
	ToolCallsMade    int
	HasRentalResults bool
	ToolLoopExceeded bool
}

func (f Filter) toInternal() filter.Filter {
	return filter.Filter{
		PropertyType:    f.PropertyType,
		RoomType:        f.RoomType,
		Country:         f.Country,
		Market:          f.Market,
		MinPrice:        f.MinPrice,
		MaxPrice:        f.MaxPrice,
		MinBedrooms:     f.MinBedrooms,
		MinAccommodates: f.MinAccommodates,
		SuperhostOnly:   f.SuperhostOnly,
	}
}

func toSummary(s domlisting.Summary) Summary {
	return Summary{
		ID:           s.ID,
		Name:         s.Name,
		PropertyType: s.PropertyType,
		RoomType:     s.RoomType,
		Price:        s.Price,
		Bedrooms:     s.Bedrooms,
		Accommodates: s.Accommodates,
		Market:       s.Market,
		Country:      s.Country,
		Superhost:    s.Superhost,
		Rating:       s.Rating,
		Score:        s.Score,
	}
}

func toChatReply(sessionID, reply string, ctx domchat.ResponseContext) ChatReply {
	return ChatReply{
		SessionID:        sessionID,
		Reply:            reply,
		ToolCallsMade:    ctx.ToolCallsMade,
		HasRentalResults: ctx.HasRentalResults,
		ToolLoopExceeded: ctx.ToolLoopExceeded,
	}
}

// embedderAdapter wraps the public Embedder to satisfy the internal
// contract. Token usage is unknown for custom embedders.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}
