// Package request defines the validated search request.
package request

import (
	"fmt"

	"github.com/staylens/staylens/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length.
	MaxQueryLength = 1000
	DefaultLimit   = 10
	MaxLimit       = 100
	// overFetchFactor and MaxCandidates bound how many candidates each
	// strategy is asked for, leaving room for fusion.
	overFetchFactor = 10
	MaxCandidates   = 500
)

// Request is a validated search query.
type Request struct {
	query   string
	filters filter.Filter
	limit   int
}

// New validates and normalizes search parameters.
// Defaults: limit=10, clamped to 100.
func New(query string, filters filter.Filter, limit int) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if err := filters.Validate(); err != nil {
		return Request{}, fmt.Errorf("invalid filters: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, filters: filters, limit: limit}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Filters returns the structured filter.
func (r *Request) Filters() filter.Filter { return r.filters }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// CandidateCount returns how many candidates each strategy should
// over-fetch before fusion.
func (r *Request) CandidateCount() int {
	n := r.limit * overFetchFactor
	if n > MaxCandidates {
		n = MaxCandidates
	}
	return n
}
