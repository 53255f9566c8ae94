package similarity_test

import (
	"context"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/similarity"
	"github.com/kritsada/personaguess/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func fullPerson(id string, narrative []float32, era string, score float64) *corpus.Person {
	return &corpus.Person{
		ID:             id,
		Label:          "Person " + id,
		FactualTags:    corpus.NewTagSet("Q177220", "Q869"),
		RelationalTags: corpus.NewTagSet("Q5001"),
		Narrative:      narrative,
		Aspects: &corpus.AspectVectors{
			Career:       narrative,
			Achievement:  narrative,
			Biographical: narrative,
			Influence:    narrative,
			Combined:     narrative,
		},
		Meta: &corpus.Metadata{
			Domain:           "music",
			Era:              era,
			AchievementScore: score,
			ThematicTags:     corpus.NewTagSet("pop", "vocalist"),
		},
	}
}

func TestBasicStrategy_selfScoreIsOne(t *testing.T) {
	t.Parallel()
	p := fullPerson("Q1", []float32{0.3, 0.7, 0.1}, "millennial", 70)
	assert.InDelta(t, 1.0, similarity.BasicStrategy{}.Score(p, p), 1e-6)
}

func TestBasicStrategy_symmetry(t *testing.T) {
	t.Parallel()
	a := fullPerson("Q1", []float32{0.3, 0.7, 0.1}, "millennial", 70)
	b := fullPerson("Q2", []float32{0.9, 0.1, 0.4}, "gen_x", 40)
	b.FactualTags = corpus.NewTagSet("Q10800557", "Q869")
	s := similarity.BasicStrategy{}
	assert.InDelta(t, s.Score(a, b), s.Score(b, a), 1e-9)
}

func TestBasicStrategy_breakdownSumsToScore(t *testing.T) {
	t.Parallel()
	a := fullPerson("Q1", []float32{0.3, 0.7, 0.1}, "millennial", 70)
	b := fullPerson("Q2", []float32{0.9, 0.1, 0.4}, "gen_x", 40)
	s := similarity.BasicStrategy{}
	breakdown := s.Breakdown(a, b)
	require.Len(t, breakdown.Components, 3)
	sum := 0.0
	for _, c := range breakdown.Components {
		assert.InDelta(t, c.Weight*c.Similarity, c.Weighted, 1e-9)
		sum += c.Weighted
	}
	assert.InDelta(t, sum, breakdown.Score, 1e-9)
	assert.InDelta(t, s.Score(a, b), breakdown.Score, 1e-9)
	assert.NotEmpty(t, breakdown.Explanation)
}

func TestMultiAspectStrategy_selfScoreIsOne(t *testing.T) {
	t.Parallel()
	p := fullPerson("Q1", []float32{0.3, 0.7, 0.1}, "millennial", 70)
	assert.InDelta(t, 1.0, similarity.MultiAspectStrategy{}.Score(p, p), 1e-6)
}

func TestMultiAspectStrategy_symmetry(t *testing.T) {
	t.Parallel()
	a := fullPerson("Q1", []float32{0.3, 0.7, 0.1}, "millennial", 70)
	b := fullPerson("Q2", []float32{0.9, 0.1, 0.4}, "boomer", 20)
	b.Meta.Domain = "sports"
	s := similarity.MultiAspectStrategy{}
	assert.InDelta(t, s.Score(a, b), s.Score(b, a), 1e-9)
}

func TestMultiAspectStrategy_eraProximity(t *testing.T) {
	t.Parallel()
	vector := []float32{1, 0}
	base := fullPerson("Q1", vector, "millennial", 50)
	sameEra := fullPerson("Q2", vector, "millennial", 50)
	adjacentEra := fullPerson("Q3", vector, "millennial_late", 50)
	distantEra := fullPerson("Q4", vector, "boomer", 50)

	s := similarity.MultiAspectStrategy{}
	assert.Greater(t, s.Score(base, sameEra), s.Score(base, adjacentEra))
	assert.Greater(t, s.Score(base, adjacentEra), s.Score(base, distantEra))
}

func TestMultiAspectStrategy_achievementCloseness(t *testing.T) {
	t.Parallel()
	vector := []float32{1, 0}
	base := fullPerson("Q1", vector, "millennial", 80)
	near := fullPerson("Q2", vector, "millennial", 75)
	far := fullPerson("Q3", vector, "millennial", 10)

	s := similarity.MultiAspectStrategy{}
	assert.Greater(t, s.Score(base, near), s.Score(base, far))
}

func TestMultiAspectStrategy_missingBundleDegradesToZeroContributions(t *testing.T) {
	t.Parallel()
	full := fullPerson("Q1", []float32{1, 0}, "millennial", 50)
	bare := &corpus.Person{ID: "Q2", Label: "Bare"}

	breakdown := similarity.MultiAspectStrategy{}.Breakdown(full, bare)
	assert.Zero(t, breakdown.Score)
	for _, c := range breakdown.Components {
		assert.Zero(t, c.Similarity, c.Name)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)

	enriched := corpus.NewIndex([]*corpus.Person{
		fullPerson("Q1", []float32{1, 0}, "millennial", 50),
		fullPerson("Q2", []float32{0, 1}, "gen_x", 60),
	})
	assert.Equal(t, "multi_aspect", similarity.Select(ctx, enriched, logger).Name())

	bare := corpus.NewIndex([]*corpus.Person{
		{ID: "Q1", Label: "One"},
		{ID: "Q2", Label: "Two"},
	})
	assert.Equal(t, "basic", similarity.Select(ctx, bare, logger).Name())
}
