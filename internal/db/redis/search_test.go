package redis

import (
	"strings"
	"testing"

	"github.com/staylens/staylens/internal/db"
	"github.com/staylens/staylens/internal/domain/search/filter"
)

// subseq reports whether want appears as a contiguous run in args.
func subseq(args, want []string) bool {
	for i := 0; i+len(want) <= len(args); i++ {
		match := true
		for j := range want {
			if args[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestBuildKNNArgs_SortsAndPagesToK(t *testing.T) {
	args := buildKNNArgs(&db.KNNQuery{
		IndexName: "idx",
		Vector:    []float32{0.1, 0.2},
		K:         500,
	})

	if args[0] != "idx" {
		t.Errorf("index: got %q", args[0])
	}
	if args[1] != "*=>[KNN 500 @__vector $BLOB AS __vector_score]" {
		t.Errorf("query: got %q", args[1])
	}
	// Without an explicit page the server returns 10 rows, so every
	// KNN call must sort on the distance alias and page to K.
	if !subseq(args, []string{"SORTBY", "__vector_score"}) {
		t.Errorf("missing SORTBY on distance alias: %v", args)
	}
	if !subseq(args, []string{"LIMIT", "0", "500"}) {
		t.Errorf("missing LIMIT 0 K: %v", args)
	}
	if !subseq(args, []string{"DIALECT", "2"}) {
		t.Errorf("missing DIALECT 2: %v", args)
	}
}

func TestBuildKNNArgs_FilterAndReturnFields(t *testing.T) {
	args := buildKNNArgs(&db.KNNQuery{
		IndexName:    "idx",
		Vector:       []float32{0.1},
		K:            20,
		Filters:      filter.Filter{Market: "Amsterdam"},
		ReturnFields: []string{"name", "price"},
	})

	if !strings.HasPrefix(args[1], "(@market:{Amsterdam})=>") {
		t.Errorf("filter prefix: got %q", args[1])
	}
	if !subseq(args, []string{"RETURN", "2", "name", "price"}) {
		t.Errorf("missing RETURN fields: %v", args)
	}
	if !subseq(args, []string{"LIMIT", "0", "20"}) {
		t.Errorf("missing LIMIT 0 K: %v", args)
	}
}

func TestBuildTextArgs_PagesToTopK(t *testing.T) {
	args := buildTextArgs(&db.TextQuery{
		IndexName: "idx",
		Query:     "canal loft",
		TopK:      50,
	})

	if args[1] != "@__content:(canal loft)" {
		t.Errorf("query: got %q", args[1])
	}
	if !subseq(args, []string{"WITHSCORES", "LIMIT", "0", "50"}) {
		t.Errorf("missing WITHSCORES/LIMIT: %v", args)
	}
}
