package request

import (
	"strings"
	"testing"

	"github.com/staylens/staylens/internal/domain/search/filter"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		limit     int
		wantErr   bool
		wantLimit int
	}{
		{"defaults", "apartment in manhattan", 0, false, DefaultLimit},
		{"explicit limit", "loft", 25, false, 25},
		{"limit clamped", "loft", 10000, false, MaxLimit},
		{"negative limit defaulted", "loft", -3, false, DefaultLimit},
		{"empty query", "", 10, true, 0},
		{"query too long", strings.Repeat("x", MaxQueryLength+1), 10, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.query, filter.Filter{}, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if r.Limit() != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", r.Limit(), tt.wantLimit)
			}
		})
	}
}

func TestNew_InvalidFilter(t *testing.T) {
	bad := -1.0
	if _, err := New("loft", filter.Filter{MinPrice: &bad}, 10); err == nil {
		t.Error("expected error for negative min price")
	}
}

func TestCandidateCount(t *testing.T) {
	r, err := New("loft", filter.Filter{}, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.CandidateCount(); got != 100 {
		t.Errorf("CandidateCount() = %d, want 100", got)
	}

	r, err = New("loft", filter.Filter{}, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.CandidateCount(); got != MaxCandidates {
		t.Errorf("CandidateCount() = %d, want cap %d", got, MaxCandidates)
	}
}
