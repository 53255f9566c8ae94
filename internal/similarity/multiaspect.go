package similarity

import (
	"github.com/kritsada/personaguess/internal/corpus"
	"math"
)

// Multi-aspect strategy weights.
const (
	aspectCareerWeight       = 0.20
	aspectAchievementWeight  = 0.15
	aspectBiographicalWeight = 0.20
	aspectInfluenceWeight    = 0.10
	aspectCombinedWeight     = 0.20
	aspectMetadataWeight     = 0.15
)

// Metadata sub-score weights.
const (
	metadataDomainWeight      = 0.30
	metadataEraWeight         = 0.20
	metadataAchievementWeight = 0.20
	metadataTagWeight         = 0.30
)

// eraOrder lists the generation buckets from oldest to youngest. Eras one
// step apart still count for half credit.
var eraOrder = []string{
	"pre_boomer",
	"boomer",
	"gen_x",
	"millennial",
	"millennial_late",
	"gen_z",
	"unknown",
}

// MultiAspectStrategy scores persons across five named embeddings plus a
// structured metadata term. Persons without a complete bundle fall back to
// zero contributions on the missing aspects rather than erroring.
type MultiAspectStrategy struct{}

func (MultiAspectStrategy) Name() string { return "multi_aspect" }

func (s MultiAspectStrategy) Score(a, b *corpus.Person) float64 {
	return s.Breakdown(a, b).Score
}

func (s MultiAspectStrategy) Breakdown(a, b *corpus.Person) Breakdown {
	aspectsA, aspectsB := a.Aspects, b.Aspects
	if aspectsA == nil {
		aspectsA = &corpus.AspectVectors{}
	}
	if aspectsB == nil {
		aspectsB = &corpus.AspectVectors{}
	}
	components := []Component{
		component("career", aspectCareerWeight, Cosine(aspectsA.Career, aspectsB.Career)),
		component("achievement", aspectAchievementWeight, Cosine(aspectsA.Achievement, aspectsB.Achievement)),
		component("biographical", aspectBiographicalWeight, Cosine(aspectsA.Biographical, aspectsB.Biographical)),
		component("influence", aspectInfluenceWeight, Cosine(aspectsA.Influence, aspectsB.Influence)),
		component("combined", aspectCombinedWeight, Cosine(aspectsA.Combined, aspectsB.Combined)),
		component("metadata", aspectMetadataWeight, metadataSimilarity(a.Meta, b.Meta)),
	}
	breakdown := Breakdown{Components: components}
	for _, c := range components {
		breakdown.Score += c.Weighted
	}
	breakdown.Explanation = explain(breakdown)
	return breakdown
}

// metadataSimilarity blends career domain, era proximity, achievement level
// closeness and thematic tag overlap. Either side missing metadata scores 0.
func metadataSimilarity(a, b *corpus.Metadata) float64 {
	if a == nil || b == nil {
		return 0
	}
	domain := 0.0
	if a.Domain != "" && a.Domain == b.Domain {
		domain = 1
	}
	return metadataDomainWeight*domain +
		metadataEraWeight*eraSimilarity(a.Era, b.Era) +
		metadataAchievementWeight*achievementCloseness(a.AchievementScore, b.AchievementScore) +
		metadataTagWeight*Jaccard(a.ThematicTags, b.ThematicTags)
}

// eraSimilarity gives full credit for the same generation bucket and half
// credit for adjacent ones.
func eraSimilarity(a, b string) float64 {
	ai, bi := eraIndex(a), eraIndex(b)
	switch d := ai - bi; {
	case d == 0:
		return 1
	case d == 1 || d == -1:
		return 0.5
	default:
		return 0
	}
}

func eraIndex(era string) int {
	for i, e := range eraOrder {
		if e == era {
			return i
		}
	}
	// Unrecognized eras bucket with "unknown".
	return len(eraOrder) - 1
}

// achievementCloseness maps the absolute gap between two 0-100 achievement
// scores onto 0 to 1, with identical scores at 1.
func achievementCloseness(a, b float64) float64 {
	closeness := 1 - math.Abs(a-b)/100
	if closeness < 0 {
		return 0
	}
	return closeness
}
