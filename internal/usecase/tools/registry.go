// Package tools exposes the retrieval operations as callable tools for
// the chat model.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/staylens/staylens/internal/domain"
	"github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/domain/search/request"
	"github.com/staylens/staylens/internal/logger"
	"github.com/staylens/staylens/internal/metrics"
	"github.com/staylens/staylens/internal/usecase/search"
)

// Registry dispatches model tool requests to the retrieval services.
type Registry struct {
	searcher Searcher
	saved    SavedReader
}

// New creates a tool registry.
func New(searcher Searcher, saved SavedReader) *Registry {
	return &Registry{searcher: searcher, saved: saved}
}

// Schemas returns the tool definitions advertised to the model.
func (r *Registry) Schemas() []chat.ToolSchema {
	return []chat.ToolSchema{
		{
			Name: chat.ToolSearchRentals,
			Description: "Search rental listings by free-text query with optional structured filters. " +
				"Returns a ranked list of matching listings.",
			Parameters: json.RawMessage(searchRentalsSchema),
		},
		{
			Name:        chat.ToolGetPropertyDetails,
			Description: "Fetch the full record of one listing by its id.",
			Parameters:  json.RawMessage(propertyDetailsSchema),
		},
		{
			Name:        chat.ToolGetSavedRentals,
			Description: "List the rentals the current user has saved. Requires a signed-in user.",
			Parameters:  json.RawMessage(savedRentalsSchema),
		},
	}
}

// Execute runs one tool request and returns its record. Tool failures
// are captured in the record, never returned as errors: the model sees
// them and can recover.
func (r *Registry) Execute(ctx context.Context, req chat.ToolRequest) chat.ToolCallRecord {
	record := chat.ToolCallRecord{Tool: req.Name, Args: req.Args}

	var (
		result any
		meta   *chat.SearchMetadata
		err    error
	)
	switch req.Name {
	case chat.ToolSearchRentals:
		result, meta, err = r.searchRentals(ctx, req.Args)
	case chat.ToolGetPropertyDetails:
		result, meta, err = r.propertyDetails(ctx, req.Args)
	case chat.ToolGetSavedRentals:
		result, err = r.savedRentals(ctx, req.Args)
	default:
		err = fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidToolArgs, req.Name)
	}

	if err != nil {
		metrics.ToolCallsTotal.WithLabelValues(req.Name, "error").Inc()
		logger.FromContext(ctx).Warn("Tool execution failed",
			zap.String("tool", req.Name), zap.Error(err))
		record.Error = err.Error()
		return record
	}

	payload, err := json.Marshal(result)
	if err != nil {
		metrics.ToolCallsTotal.WithLabelValues(req.Name, "error").Inc()
		record.Error = fmt.Sprintf("encode result: %v", err)
		return record
	}

	metrics.ToolCallsTotal.WithLabelValues(req.Name, "success").Inc()
	record.Result = payload
	record.Search = meta
	return record
}

// --- search_rentals ---

type searchArgs struct {
	Query   string        `json:"query"`
	Filters filter.Filter `json:"filters"`
	Limit   int           `json:"limit"`
}

type searchPayload struct {
	Results  []domlisting.Summary `json:"results"`
	Strategy string               `json:"strategy"`
	Count    int                  `json:"count"`
}

func (r *Registry) searchRentals(
	ctx context.Context, raw json.RawMessage,
) (any, *chat.SearchMetadata, error) {
	var args searchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, nil, err
	}

	req, err := request.New(args.Query, args.Filters, args.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrInvalidToolArgs, err)
	}

	resp, err := r.searcher.Search(ctx, &req)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(resp.Results))
	for i := range resp.Results {
		ids[i] = resp.Results[i].ID()
	}

	payload := searchPayload{
		Results:  search.Summaries(resp.Results),
		Strategy: string(resp.Strategy),
		Count:    len(resp.Results),
	}
	meta := &chat.SearchMetadata{
		SearchPerformed: true,
		SearchType:      resp.Strategy,
		Query:           args.Query,
		Filters:         args.Filters,
		ListingIDs:      ids,
	}
	return payload, meta, nil
}

// --- get_property_details ---

func (r *Registry) propertyDetails(
	ctx context.Context, raw json.RawMessage,
) (any, *chat.SearchMetadata, error) {
	// listing_id may arrive as a string or a bare number.
	var args struct {
		ListingID any `json:"listing_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, nil, err
	}

	id := domlisting.CanonicalIDAny(args.ListingID)
	if id == "" {
		return nil, nil, fmt.Errorf("%w: listing_id is required", domain.ErrInvalidToolArgs)
	}

	detail, err := r.searcher.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	meta := &chat.SearchMetadata{
		SearchPerformed: true,
		ListingIDs:      []string{detail.ID},
	}
	return detail, meta, nil
}

// --- get_saved_rentals ---

type savedArgs struct {
	IncludeDetails bool `json:"include_details"`
}

type savedPayload struct {
	ListingIDs []string             `json:"listing_ids"`
	Count      int                  `json:"count"`
	Details    []*domlisting.Detail `json:"details,omitempty"`
}

func (r *Registry) savedRentals(ctx context.Context, raw json.RawMessage) (any, error) {
	identity := domain.IdentityFromContext(ctx)
	if identity.Anonymous() {
		return nil, fmt.Errorf("saved rentals require a signed-in user: %w", domain.ErrUnauthorized)
	}

	var args savedArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	ids, err := r.saved.SavedListings(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	payload := savedPayload{ListingIDs: ids, Count: len(ids)}
	if args.IncludeDetails {
		payload.Details = make([]*domlisting.Detail, 0, len(ids))
		for _, id := range ids {
			detail, err := r.searcher.Detail(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("resolve saved listing %s: %w", id, err)
			}
			payload.Details = append(payload.Details, detail)
		}
	}
	return payload, nil
}

// decodeArgs parses model-produced JSON arguments. Malformed JSON is a
// tool-level failure the model gets to see and correct.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidToolArgs, err)
	}
	return nil
}
