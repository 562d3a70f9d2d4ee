package search

import (
	"context"

	"github.com/staylens/staylens/internal/domain"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	SearchVector(
		ctx context.Context, vector []float32, filters filter.Filter, k int,
	) ([]result.Ranked, error)

	SearchLexical(
		ctx context.Context, query string, filters filter.Filter, k int,
	) ([]result.Ranked, error)

	GetByID(ctx context.Context, id string) (*domlisting.Listing, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
