package search

import (
	"math"
	"testing"

	"github.com/staylens/staylens/internal/domain/search/result"
)

func vectorHit(id string, score, price float64) result.Ranked {
	return result.New(id, score, result.StrategyVector, "listing "+id, price, nil, nil)
}

func lexicalHit(id string, score, price float64) result.Ranked {
	return result.New(id, score, result.StrategyLexical, "listing "+id, price, nil, nil)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFuseBothStrategiesBoost(t *testing.T) {
	vector := []result.Ranked{
		vectorHit("1", 0.9, 100),
		vectorHit("2", 0.5, 100),
		vectorHit("3", 0.1, 100),
	}
	lexical := []result.Ranked{
		lexicalHit("2", 8.0, 100),
		lexicalHit("4", 2.0, 100),
	}

	fused := fuse(vector, lexical, 10)
	if len(fused) != 4 {
		t.Fatalf("len(fused) = %d, want 4", len(fused))
	}

	scores := map[string]float64{}
	strategies := map[string]result.Strategy{}
	for i := range fused {
		scores[fused[i].ID()] = fused[i].Score()
		strategies[fused[i].ID()] = fused[i].Strategy()
	}

	// normalized vector: 1 -> 1.0, 2 -> 0.5, 3 -> 0.0
	// normalized lexical: 2 -> 1.0, 4 -> 0.0
	if !approx(scores["1"], 0.7) {
		t.Errorf("score[1] = %f, want 0.7", scores["1"])
	}
	if !approx(scores["2"], 0.7*0.5+0.3*1.0) {
		t.Errorf("score[2] = %f, want 0.65", scores["2"])
	}
	if !approx(scores["3"], 0) || !approx(scores["4"], 0) {
		t.Errorf("tail scores = %f, %f, want 0", scores["3"], scores["4"])
	}

	if strategies["2"] != result.StrategyHybrid {
		t.Errorf("strategy[2] = %s, want hybrid", strategies["2"])
	}
	if strategies["1"] != result.StrategyVector || strategies["4"] != result.StrategyLexical {
		t.Errorf("single-source strategies wrong: %v", strategies)
	}

	// Highest fused score first.
	if fused[0].ID() != "1" || fused[1].ID() != "2" {
		t.Errorf("order = [%s, %s, ...]", fused[0].ID(), fused[1].ID())
	}
}

func TestFuseDedupesEquivalentIdentifiers(t *testing.T) {
	// "42" and "42.0" are the same listing under different encodings.
	vector := []result.Ranked{vectorHit("42", 0.9, 100)}
	lexical := []result.Ranked{lexicalHit("42.0", 7.0, 100)}

	fused := fuse(vector, lexical, 10)
	if len(fused) != 1 {
		t.Fatalf("len(fused) = %d, want 1 after dedup", len(fused))
	}
	if fused[0].ID() != "42" {
		t.Errorf("id = %q, want canonical 42", fused[0].ID())
	}
	if fused[0].Strategy() != result.StrategyHybrid {
		t.Errorf("strategy = %s, want hybrid", fused[0].Strategy())
	}
	// Single-element lists normalize to 1.0 each.
	if !approx(fused[0].Score(), 1.0) {
		t.Errorf("score = %f, want 1.0", fused[0].Score())
	}
}

func TestFuseTieBreaksByPrice(t *testing.T) {
	// Identical normalized scores; the cheaper listing ranks first.
	vector := []result.Ranked{
		vectorHit("a", 0.5, 300),
		vectorHit("b", 0.5, 120),
	}

	fused := fuse(vector, nil, 10)
	if len(fused) != 2 {
		t.Fatalf("len(fused) = %d, want 2", len(fused))
	}
	if fused[0].ID() != "b" || fused[1].ID() != "a" {
		t.Errorf("order = [%s, %s], want [b, a]", fused[0].ID(), fused[1].ID())
	}
}

func TestFuseTruncatesToLimit(t *testing.T) {
	var vector []result.Ranked
	for i := 0; i < 30; i++ {
		vector = append(vector, vectorHit(string(rune('a'+i)), float64(30-i), 100))
	}

	fused := fuse(vector, nil, 5)
	if len(fused) != 5 {
		t.Fatalf("len(fused) = %d, want 5", len(fused))
	}
	if fused[0].ID() != "a" {
		t.Errorf("top hit = %s, want a", fused[0].ID())
	}
}

func TestFuseEmptyInputs(t *testing.T) {
	if got := fuse(nil, nil, 10); len(got) != 0 {
		t.Errorf("fuse(nil, nil) = %v, want empty", got)
	}

	lexical := []result.Ranked{lexicalHit("1", 3.0, 50)}
	fused := fuse(nil, lexical, 10)
	if len(fused) != 1 || fused[0].Strategy() != result.StrategyLexical {
		t.Errorf("lexical-only fuse = %v", fused)
	}
	if !approx(fused[0].Score(), 0.3) {
		t.Errorf("score = %f, want lexical weight 0.3", fused[0].Score())
	}
}

func TestFuseOrderDeterministicOnFullTie(t *testing.T) {
	// Equal fused score and equal price: the canonical id decides, so
	// repeated fusions of the same inputs never reorder.
	lexical := []result.Ranked{
		lexicalHit("b", 3.0, 100),
		lexicalHit("a", 3.0, 100),
	}

	for run := 0; run < 200; run++ {
		fused := fuse(nil, lexical, 10)
		if len(fused) != 2 {
			t.Fatalf("run %d: len(fused) = %d, want 2", run, len(fused))
		}
		if fused[0].ID() != "a" || fused[1].ID() != "b" {
			t.Fatalf("run %d: order = [%s %s], want [a b]", run, fused[0].ID(), fused[1].ID())
		}
	}
}

func TestNormalizeConstantScores(t *testing.T) {
	hits := []result.Ranked{
		vectorHit("1", 0.4, 100),
		vectorHit("2", 0.4, 100),
	}
	norm := normalize(hits)
	if !approx(norm[0], 1.0) || !approx(norm[1], 1.0) {
		t.Errorf("norm = %v, want all 1.0", norm)
	}
}
