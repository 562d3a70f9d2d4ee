package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	domchat "github.com/staylens/staylens/internal/domain/chat"
)

// systemPrompt frames the assistant and its tool budget. The model is
// told to search before claiming anything about inventory.
const systemPrompt = `You are a rental search assistant. You help users find short-term
rental listings and answer questions about specific properties.

Rules:
- Use the search_rentals tool whenever the user asks about available
  rentals. Never invent listings or prices.
- Use get_property_details when the user asks about one specific
  listing.
- Use get_saved_rentals only when the user asks about rentals they have
  saved. It requires a signed-in user.
- When a search returns no results, say so and suggest loosening the
  filters.
- Keep answers short and concrete. Mention listing names and prices
  from tool results, never from memory.`

// contextPrompt renders caller-supplied context as a second system
// message so the model can ground answers in what the user is
// currently viewing.
func contextPrompt(rc domchat.RequestContext) string {
	var b strings.Builder
	b.WriteString("Current session context from the caller:")
	if rc.CurrentSearch != "" {
		fmt.Fprintf(&b, "\n- The user's current search: %s", rc.CurrentSearch)
	}
	if !rc.Filters.IsEmpty() {
		if raw, err := json.Marshal(rc.Filters); err == nil {
			fmt.Fprintf(&b, "\n- Active search filters: %s", raw)
		}
	}
	if rc.UserPreferences != "" {
		fmt.Fprintf(&b, "\n- Stated user preferences: %s", rc.UserPreferences)
	}
	if rc.CurrentProperty != "" {
		fmt.Fprintf(&b, "\n- The user is currently viewing listing: %s", rc.CurrentProperty)
	}
	return b.String()
}
