package similarity

import (
	"github.com/kritsada/personaguess/internal/corpus"
	"math"
)

// Jaccard is the intersection-over-union of two tag sets. Two empty sets
// share no evidence, so they score 0 rather than 1.
func Jaccard(a, b corpus.TagSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	intersection := 0
	for id := range small {
		if large.Has(id) {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// Cosine is the cosine similarity of two embeddings. Missing, mismatched or
// zero-norm vectors score 0 so a degraded corpus degrades scores instead of
// poisoning them with NaN.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
