// Package result defines the ranked hit produced by each retrieval
// strategy and by fusion.
package result

// Strategy tags the origin of a ranked hit.
type Strategy string

const (
	// StrategyVector marks a hit from the vector similarity index.
	StrategyVector Strategy = "vector"
	// StrategyLexical marks a hit from the lexical text index.
	StrategyLexical Strategy = "lexical"
	// StrategyHybrid marks a fused hit present in both strategies.
	StrategyHybrid Strategy = "hybrid"
)

// Ranked is a single retrieval hit. Produced transiently per query,
// never persisted.
type Ranked struct {
	id       string
	score    float64
	strategy Strategy
	name     string
	price    float64
	tags     map[string]string
	numerics map[string]float64
}

// New creates a ranked hit.
func New(
	id string, score float64, strategy Strategy,
	name string, price float64,
	tags map[string]string, numerics map[string]float64,
) Ranked {
	return Ranked{
		id: id, score: score, strategy: strategy,
		name: name, price: price,
		tags: tags, numerics: numerics,
	}
}

// ID returns the canonical listing identifier.
func (r *Ranked) ID() string { return r.id }

// Score returns the relevance score. Scale depends on strategy until
// normalization; fused hits carry the weighted fused score.
func (r *Ranked) Score() float64 { return r.score }

// Strategy returns the originating strategy tag.
func (r *Ranked) Strategy() Strategy { return r.strategy }

// Name returns the listing name.
func (r *Ranked) Name() string { return r.name }

// Price returns the listing price, used as the deterministic tie-break.
func (r *Ranked) Price() float64 { return r.price }

// Tags returns string attributes carried from the index.
func (r *Ranked) Tags() map[string]string { return r.tags }

// Numerics returns numeric attributes carried from the index.
func (r *Ranked) Numerics() map[string]float64 { return r.numerics }
