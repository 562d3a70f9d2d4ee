package sdk

import (
	"context"
	"strings"
	"testing"

	domchat "github.com/staylens/staylens/internal/domain/chat"
	domlisting "github.com/staylens/staylens/internal/domain/listing"
)

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New()
	if err == nil || !strings.Contains(err.Error(), "database address") {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestNew_RequiresEmbedder(t *testing.T) {
	_, err := New(WithRedis("localhost:6379", ""))
	if err == nil || !strings.Contains(err.Error(), "embedding provider") {
		t.Fatalf("expected embedder error, got %v", err)
	}
}

func TestFilterConversion(t *testing.T) {
	minPrice := 50.0
	minBeds := 2
	f := Filter{
		PropertyType:  "Loft",
		Market:        "Amsterdam",
		MinPrice:      &minPrice,
		MinBedrooms:   &minBeds,
		SuperhostOnly: true,
	}

	got := f.toInternal()
	if got.PropertyType != "Loft" || got.Market != "Amsterdam" {
		t.Errorf("strings: got %+v", got)
	}
	if got.MinPrice == nil || *got.MinPrice != 50.0 {
		t.Errorf("min_price: got %v", got.MinPrice)
	}
	if got.MinBedrooms == nil || *got.MinBedrooms != 2 {
		t.Errorf("min_bedrooms: got %v", got.MinBedrooms)
	}
	if !got.SuperhostOnly {
		t.Error("superhost_only not carried")
	}
}

func TestFilterConversion_ZeroMatchesEverything(t *testing.T) {
	if !(Filter{}).toInternal().IsEmpty() {
		t.Error("zero filter should convert to an empty predicate set")
	}
}

func TestSummaryConversion(t *testing.T) {
	got := toSummary(domlisting.Summary{
		ID:        "42",
		Name:      "Canal Loft",
		Price:     150,
		Bedrooms:  2,
		Market:    "Amsterdam",
		Superhost: true,
		Score:     0.91,
	})
	if got.ID != "42" || got.Name != "Canal Loft" || got.Score != 0.91 {
		t.Errorf("summary: got %+v", got)
	}
	if !got.Superhost || got.Bedrooms != 2 {
		t.Errorf("summary attrs: got %+v", got)
	}
}

func TestChatReplyConversion(t *testing.T) {
	got := toChatReply("sess-1", "Found it.", domchat.ResponseContext{
		ToolCallsMade:    2,
		HasRentalResults: true,
		ToolLoopExceeded: true,
	})
	if got.SessionID != "sess-1" || got.Reply != "Found it." {
		t.Errorf("reply: got %+v", got)
	}
	if got.ToolCallsMade != 2 || !got.HasRentalResults || !got.ToolLoopExceeded {
		t.Errorf("context: got %+v", got)
	}
}

func TestEmbedderAdapter(t *testing.T) {
	a := &embedderAdapter{inner: stubEmbedder{vec: []float32{0.1, 0.2}}}

	res, err := a.Embed(context.Background(), "loft")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(res.Embedding) != 2 || res.Embedding[0] != 0.1 {
		t.Errorf("embedding: got %v", res.Embedding)
	}
	if res.TotalTokens != 0 {
		t.Errorf("tokens: got %d, want 0 for custom embedder", res.TotalTokens)
	}
}

type stubEmbedder struct {
	vec []float32
}

func (s stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vec, nil
}
