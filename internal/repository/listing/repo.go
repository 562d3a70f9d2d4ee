// Package listing is the storage repository for rental listings.
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/staylens/staylens/internal/db"
	"github.com/staylens/staylens/internal/domain"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/domain/search/result"
)

const (
	keyPrefix = domain.KeyPrefix + "listing:"
	indexName = domain.KeyPrefix + "listings:idx"
)

// searchReturnFields is the compact attribute set fetched per hit.
// Descriptions and vectors stay out of search payloads.
var searchReturnFields = []string{
	"name", "price", "property_type", "room_type", "market", "country",
	"bedrooms", "accommodates", "superhost", "rating", "__vector_score",
}

// store is the consumer interface for listing operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// HNSWConfig tunes the vector index build.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo stores listings as hashes under one FT index with both a TEXT
// and a VECTOR field.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a listing repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides HNSW build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the listing FT index if it does not exist.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(indexName).
		Prefix(keyPrefix).
		Text("__content").
		VectorHNSW("__vector", r.vectorDim, r.hnsw.M, r.hnsw.EFConstruct).
		Numeric("price").
		Numeric("bedrooms").
		Numeric("accommodates").
		Numeric("rating").
		Tag("property_type").
		Tag("room_type").
		Tag("market").
		Tag("country").
		Tag("superhost").
		Tag("instant_bookable").
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert writes one listing hash.
// The vector must match the index dimension or be entirely absent.
func (r *Repo) Upsert(ctx context.Context, l *domlisting.Listing) error {
	if err := r.validate(l); err != nil {
		return err
	}
	if err := r.store.HSet(ctx, keyPrefix+domlisting.CanonicalID(l.ID), buildHashFields(l)); err != nil {
		return fmt.Errorf("upsert listing %s: %w", l.ID, err)
	}
	return nil
}

// UpsertMulti writes a batch of listings in one pipelined round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, listings []*domlisting.Listing) error {
	items := make([]db.HashSetItem, 0, len(listings))
	for _, l := range listings {
		if err := r.validate(l); err != nil {
			return err
		}
		items = append(items, db.HashSetItem{
			Key:    keyPrefix + domlisting.CanonicalID(l.ID),
			Fields: buildHashFields(l),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d listings: %w", len(listings), err)
	}
	return nil
}

// GetByID resolves one identifier to a full listing record.
// Identifier encoding is normalized before lookup.
func (r *Repo) GetByID(ctx context.Context, id string) (*domlisting.Listing, error) {
	canonical := domlisting.CanonicalID(id)
	if canonical == "" {
		return nil, fmt.Errorf("%w: empty listing id", domain.ErrValidation)
	}

	fields, err := r.store.HGetAll(ctx, keyPrefix+canonical)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", canonical, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("listing %s: %w", canonical, domain.ErrNotFound)
	}

	return parseHashFields(canonical, fields), nil
}

// Count returns the number of listings in the search index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

// SearchVector runs KNN similarity search with attribute pre-filtering.
func (r *Repo) SearchVector(
	ctx context.Context, vector []float32, filters filter.Filter, k int,
) ([]result.Ranked, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Filters:      filters,
		Vector:       vector,
		K:            k,
		ReturnFields: searchReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search vector: %w", err)
	}
	return parseSearchEntries(sr, result.StrategyVector), nil
}

// SearchLexical runs BM25 text search with the same attribute pre-filtering.
func (r *Repo) SearchLexical(
	ctx context.Context, query string, filters filter.Filter, k int,
) ([]result.Ranked, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    indexName,
		Query:        query,
		Filters:      filters,
		TopK:         k,
		ReturnFields: searchReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search lexical: %w", err)
	}
	return parseSearchEntries(sr, result.StrategyLexical), nil
}

// SavedListings returns the canonical identifiers a user has saved.
func (r *Repo) SavedListings(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, savedKey(userID))
	if err != nil {
		return nil, fmt.Errorf("saved listings for %s: %w", userID, err)
	}
	return ids, nil
}

// SaveListing adds a listing to a user's saved set.
func (r *Repo) SaveListing(ctx context.Context, userID, listingID string) error {
	if err := r.store.SAdd(ctx, savedKey(userID), domlisting.CanonicalID(listingID)); err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	return nil
}

// UnsaveListing removes a listing from a user's saved set.
func (r *Repo) UnsaveListing(ctx context.Context, userID, listingID string) error {
	if err := r.store.SRem(ctx, savedKey(userID), domlisting.CanonicalID(listingID)); err != nil {
		return fmt.Errorf("unsave listing: %w", err)
	}
	return nil
}

func (r *Repo) validate(l *domlisting.Listing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(l.Vector) != 0 && len(l.Vector) != r.vectorDim {
		return fmt.Errorf("listing %s: got %d, want %d: %w",
			l.ID, len(l.Vector), r.vectorDim, domain.ErrVectorDimMismatch)
	}
	return nil
}

func savedKey(userID string) string {
	return domain.KeyPrefix + "user:" + userID + ":saved"
}
