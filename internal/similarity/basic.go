package similarity

import (
	"github.com/kritsada/personaguess/internal/corpus"
)

// Basic strategy weights. Narrative embeddings dominate because the tag sets
// are sparse for most of the corpus.
const (
	basicNarrativeWeight  = 0.5
	basicFactualWeight    = 0.3
	basicRelationalWeight = 0.2
)

// BasicStrategy blends narrative cosine similarity with factual and
// relational tag overlap. It works on any corpus, enriched or not.
type BasicStrategy struct{}

func (BasicStrategy) Name() string { return "basic" }

func (BasicStrategy) Score(a, b *corpus.Person) float64 {
	return basicNarrativeWeight*Cosine(a.Narrative, b.Narrative) +
		basicFactualWeight*Jaccard(a.FactualTags, b.FactualTags) +
		basicRelationalWeight*Jaccard(a.RelationalTags, b.RelationalTags)
}

func (s BasicStrategy) Breakdown(a, b *corpus.Person) Breakdown {
	components := []Component{
		component("narrative", basicNarrativeWeight, Cosine(a.Narrative, b.Narrative)),
		component("factual_tags", basicFactualWeight, Jaccard(a.FactualTags, b.FactualTags)),
		component("relational_tags", basicRelationalWeight, Jaccard(a.RelationalTags, b.RelationalTags)),
	}
	breakdown := Breakdown{Components: components}
	for _, c := range components {
		breakdown.Score += c.Weighted
	}
	breakdown.Explanation = explain(breakdown)
	return breakdown
}

func component(name string, weight, similarity float64) Component {
	return Component{
		Name:       name,
		Weight:     weight,
		Similarity: similarity,
		Weighted:   weight * similarity,
	}
}
