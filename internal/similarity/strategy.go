package similarity

import (
	"context"
	"fmt"
	"github.com/kritsada/personaguess/internal/corpus"
	"log/slog"
	"strings"
)

// Component is one weighted term of a similarity score.
type Component struct {
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Similarity float64 `json:"similarity"`
	Weighted   float64 `json:"weighted"`
}

// Breakdown itemizes how a score was assembled, plus a short human-readable
// reading of it.
type Breakdown struct {
	Score       float64     `json:"score"`
	Components  []Component `json:"components"`
	Explanation string      `json:"explanation"`
}

// Strategy scores how alike two persons are, on a 0 to 1 scale.
type Strategy interface {
	Name() string
	Score(a, b *corpus.Person) float64
	Breakdown(a, b *corpus.Person) Breakdown
}

// Select picks the strongest strategy the corpus can support.
func Select(ctx context.Context, index *corpus.Index, logger *slog.Logger) Strategy {
	var strategy Strategy = BasicStrategy{}
	if index.MultiAspectAvailable() {
		strategy = MultiAspectStrategy{}
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "similarity strategy selected",
		slog.String("strategy", strategy.Name()))
	return strategy
}

// explain summarizes a breakdown in one sentence: overall closeness first,
// then the component that carried the most weight into the score.
func explain(b Breakdown) string {
	var overall string
	switch {
	case b.Score >= 0.8:
		overall = "Extremely similar profiles"
	case b.Score >= 0.6:
		overall = "Very similar profiles"
	case b.Score >= 0.4:
		overall = "Moderately similar profiles"
	case b.Score >= 0.2:
		overall = "Somewhat similar profiles"
	default:
		overall = "Largely different profiles"
	}
	var top *Component
	for i := range b.Components {
		if top == nil || b.Components[i].Weighted > top.Weighted {
			top = &b.Components[i]
		}
	}
	if top == nil || top.Weighted == 0 {
		return overall + " with no shared signals."
	}
	name := strings.ReplaceAll(top.Name, "_", " ")
	return fmt.Sprintf("%s, driven mostly by %s similarity (%.2f).", overall, name, top.Similarity)
}
