package tools

import (
	"context"

	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/usecase/search"
)

// Searcher runs retrieval on behalf of the model.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (*search.Response, error)
	Detail(ctx context.Context, id string) (*domlisting.Detail, error)
}

// SavedReader reads a user's saved listings.
type SavedReader interface {
	SavedListings(ctx context.Context, userID string) ([]string, error)
}
