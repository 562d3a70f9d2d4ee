package search

import (
	"sort"

	domlisting "github.com/staylens/staylens/internal/domain/listing"
	"github.com/staylens/staylens/internal/domain/search/result"
)

// Fusion weights. Vector similarity dominates; lexical match breaks in
// exact-phrase queries the embedding misses.
const (
	vectorWeight  = 0.7
	lexicalWeight = 0.3
)

// fuse merges the two candidate lists into one ranked list. Scores are
// min-max normalized per strategy so BM25 and cosine scales become
// comparable, then combined as a weighted sum. A listing found by both
// strategies gets both contributions and is marked hybrid.
func fuse(vector, lexical []result.Ranked, limit int) []result.Ranked {
	vectorNorm := normalize(vector)
	lexicalNorm := normalize(lexical)

	type scored struct {
		res      result.Ranked
		score    float64
		strategy result.Strategy
	}

	merged := make(map[string]*scored, len(vector)+len(lexical))

	for i, r := range vector {
		id := domlisting.CanonicalID(r.ID())
		score := vectorWeight * vectorNorm[i]
		// Duplicate ids within one strategy keep their best score.
		if existing, ok := merged[id]; ok && existing.score >= score {
			continue
		}
		merged[id] = &scored{
			res:      r,
			score:    score,
			strategy: result.StrategyVector,
		}
	}

	for i, r := range lexical {
		id := domlisting.CanonicalID(r.ID())
		score := lexicalWeight * lexicalNorm[i]
		existing, ok := merged[id]
		switch {
		case !ok:
			merged[id] = &scored{res: r, score: score, strategy: result.StrategyLexical}
		case existing.strategy == result.StrategyLexical:
			if score > existing.score {
				existing.score = score
			}
		case existing.strategy == result.StrategyVector:
			existing.score += score
			existing.strategy = result.StrategyHybrid
		default: // already hybrid, keep the first lexical contribution
		}
	}

	fused := make([]result.Ranked, 0, len(merged))
	for id, s := range merged {
		fused = append(fused, result.New(
			id, s.score, s.strategy,
			s.res.Name(), s.res.Price(),
			s.res.Tags(), s.res.Numerics(),
		))
	}

	// Deterministic order: score descending, cheaper listing wins ties,
	// canonical id as the last tie-break so map iteration never leaks
	// into the output order.
	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score() != fused[j].Score() {
			return fused[i].Score() > fused[j].Score()
		}
		if fused[i].Price() != fused[j].Price() {
			return fused[i].Price() < fused[j].Price()
		}
		return fused[i].ID() < fused[j].ID()
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused
}

// normalize maps raw scores onto [0,1] via min-max. A single candidate
// or a constant list normalizes to 1.0: any hit a strategy returned is
// its best evidence.
func normalize(hits []result.Ranked) []float64 {
	if len(hits) == 0 {
		return nil
	}

	minScore, maxScore := hits[0].Score(), hits[0].Score()
	for _, r := range hits[1:] {
		if r.Score() < minScore {
			minScore = r.Score()
		}
		if r.Score() > maxScore {
			maxScore = r.Score()
		}
	}

	norm := make([]float64, len(hits))
	spread := maxScore - minScore
	for i, r := range hits {
		if spread == 0 {
			norm[i] = 1.0
			continue
		}
		norm[i] = (r.Score() - minScore) / spread
	}
	return norm
}
