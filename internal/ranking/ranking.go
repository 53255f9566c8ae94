package ranking

import (
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/similarity"
	"log/slog"
	"sort"
)

// Entry is one row of the full similarity ranking against the secret person.
type Entry struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

var ErrSecretNotInPool = errors.NewSentinel("secret person not in pool")

// Compute ranks every person in the pool by similarity to the secret,
// best first. Ranks are 1-based and the secret itself always ranks first with
// the strategy's self-similarity score. Ties keep pool order so the ranking
// is deterministic.
func Compute(strategy similarity.Strategy, index *corpus.Index, secretID string, pool []string) ([]Entry, error) {
	secret, ok := index.Get(secretID)
	if !ok {
		return nil, errors.New("secret person not in corpus", slog.String("id", secretID))
	}

	entries := make([]Entry, 0, len(pool))
	foundSecret := false
	for _, id := range pool {
		person, ok := index.Get(id)
		if !ok {
			return nil, errors.New("pool member not in corpus", slog.String("id", id))
		}
		if id == secretID {
			foundSecret = true
		}
		entries = append(entries, Entry{
			ID:    person.ID,
			Label: person.Label,
			Score: strategy.Score(secret, person),
		})
	}
	if !foundSecret {
		return nil, ErrSecretNotInPool
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
