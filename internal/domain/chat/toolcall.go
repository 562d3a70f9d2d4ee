package chat

import (
	"encoding/json"

	"github.com/staylens/staylens/internal/domain/search/filter"
	"github.com/staylens/staylens/internal/domain/search/result"
)

// Tool names recognized by the registry.
const (
	ToolSearchRentals      = "search_rentals"
	ToolGetPropertyDetails = "get_property_details"
	ToolGetSavedRentals    = "get_saved_rentals"
)

// ToolCallRecord captures one tool execution within an agent run,
// success or failure. Transient, scoped to the run.
type ToolCallRecord struct {
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`

	// Search holds metadata attached by search-classified tools.
	Search *SearchMetadata `json:"search,omitempty"`
}

// Failed reports whether the execution surfaced a tool-level error.
func (r ToolCallRecord) Failed() bool { return r.Error != "" }

// IsSearch classifies the record as a search event: a successful
// retrieval tool call that surfaced listings.
func (r ToolCallRecord) IsSearch() bool {
	if r.Failed() {
		return false
	}
	return r.Tool == ToolSearchRentals || r.Tool == ToolGetPropertyDetails
}

// SearchMetadata is the machine-readable annotation derived from the
// most recent search-classified tool call, so the calling UI can
// re-fetch records without re-running retrieval.
type SearchMetadata struct {
	SearchPerformed bool            `json:"search_performed"`
	SearchType      result.Strategy `json:"search_type,omitempty"`
	Query           string          `json:"query,omitempty"`
	Filters         filter.Filter   `json:"filters,omitempty"`
	ListingIDs      []string        `json:"listing_ids,omitempty"`
}

// RequestContext is caller-supplied situational context attached to a
// chat request: what the user is currently looking at on the calling
// side. It is surfaced to the model through the prompt, never persisted.
type RequestContext struct {
	CurrentSearch   string        `json:"current_search,omitempty"`
	Filters         filter.Filter `json:"filters,omitempty"`
	UserPreferences string        `json:"user_preferences,omitempty"`
	CurrentProperty string        `json:"current_property,omitempty"`
}

// IsEmpty reports whether no context field is set.
func (c RequestContext) IsEmpty() bool {
	return c.CurrentSearch == "" && c.UserPreferences == "" &&
		c.CurrentProperty == "" && c.Filters.IsEmpty()
}

// ResponseContext is the structured context returned with every chat
// answer.
type ResponseContext struct {
	ToolCallsMade    int             `json:"tool_calls_made"`
	HasRentalResults bool            `json:"has_rental_results"`
	ToolLoopExceeded bool            `json:"tool_loop_exceeded,omitempty"`
	SearchMetadata   *SearchMetadata `json:"search_metadata,omitempty"`
}

// DeriveContext scans accumulated tool call records into the response
// context. has_rental_results is true when any retrieval tool returned
// a non-empty result; search_metadata comes from the most recent
// search-classified call.
func DeriveContext(records []ToolCallRecord, loopExceeded bool) ResponseContext {
	ctx := ResponseContext{
		ToolCallsMade:    len(records),
		ToolLoopExceeded: loopExceeded,
	}
	for i := range records {
		rec := &records[i]
		if !rec.IsSearch() {
			continue
		}
		if rec.Search != nil {
			if len(rec.Search.ListingIDs) > 0 {
				ctx.HasRentalResults = true
			}
			ctx.SearchMetadata = rec.Search
		}
	}
	return ctx
}
