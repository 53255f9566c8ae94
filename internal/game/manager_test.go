package game_test

import (
	"context"
	"fmt"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/game"
	"github.com/kritsada/personaguess/internal/modes"
	"github.com/kritsada/personaguess/internal/similarity"
	"github.com/kritsada/personaguess/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"sync"
	"testing"
)

// newTestManager builds a manager over a small all-singers corpus so the
// "music" and "all" modes both match everyone.
func newTestManager(t *testing.T, personCount int) (*game.Manager, *game.MemoryStore) {
	t.Helper()
	var persons []*corpus.Person
	for i := 0; i < personCount; i++ {
		persons = append(persons, &corpus.Person{
			ID:          fmt.Sprintf("Q%d", i+1),
			Label:       fmt.Sprintf("Singer %d", i+1),
			FactualTags: corpus.NewTagSet("Q177220"),
			Narrative:   []float32{float32(i + 1), 1},
		})
	}
	store := game.NewMemoryStore()
	manager := game.NewManager(
		corpus.NewIndex(persons),
		similarity.BasicStrategy{},
		modes.NewCatalog(),
		store,
		testhelpers.NewLogger(io.Discard),
	)
	return manager, store
}

// secretOf peeks at the hidden secret for test assertions.
func secretOf(t *testing.T, store *game.MemoryStore, sessionID string) string {
	t.Helper()
	session, ok := store.Get(sessionID)
	require.True(t, ok)
	return session.SecretID
}

func TestStart(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "music")
	require.NoError(t, err)
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, "music", started.Mode.ID)
	assert.Equal(t, 5, started.PoolSize)

	// The secret comes from the pool and is never part of the response.
	session, ok := store.Get(started.SessionID)
	require.True(t, ok)
	assert.Contains(t, session.Pool, session.SecretID)
}

func TestStart_unknownModeFallsBackToAll(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t, 3)
	started, err := manager.Start(context.Background(), "no_such_mode")
	require.NoError(t, err)
	assert.Equal(t, "all", started.Mode.ID)
}

func TestStart_emptyPool(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t, 3)
	_, err := manager.Start(context.Background(), "sports")
	assert.ErrorIs(t, err, game.ErrEmptyPool)
}

func TestGuess_winsOnSecret(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)

	result, err := manager.Guess(ctx, started.SessionID, secret)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.True(t, result.GameWon)
	assert.Equal(t, 1, result.Result.Rank)
}

func TestGuess_wrongGuessStaysActive(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)
	wrong := wrongGuess(t, store, started.SessionID, secret)

	result, err := manager.Guess(ctx, started.SessionID, wrong)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.False(t, result.GameWon)
	assert.Greater(t, result.Result.Rank, 1)
	assert.Equal(t, wrong, result.Result.ID)
}

func wrongGuess(t *testing.T, store *game.MemoryStore, sessionID, secret string) string {
	t.Helper()
	session, ok := store.Get(sessionID)
	require.True(t, ok)
	for _, id := range session.Pool {
		if id != secret {
			return id
		}
	}
	t.Fatal("pool has no wrong guess")
	return ""
}

func TestGuess_repeatGuessIsIdempotent(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)
	wrong := wrongGuess(t, store, started.SessionID, secret)

	first, err := manager.Guess(ctx, started.SessionID, wrong)
	require.NoError(t, err)
	second, err := manager.Guess(ctx, started.SessionID, wrong)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	session, _ := store.Get(started.SessionID)
	assert.Equal(t, []string{wrong}, session.Guessed)
}

func TestGuess_unknownSessionAndPerson(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t, 3)
	ctx := context.Background()

	_, err := manager.Guess(ctx, "no-such-session", "Q1")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	_, err = manager.Guess(ctx, started.SessionID, "Q999")
	assert.ErrorIs(t, err, game.ErrUnknownPerson)
}

func TestGuess_rejectedAfterGameEnds(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)

	_, err = manager.Guess(ctx, started.SessionID, secret)
	require.NoError(t, err)

	_, err = manager.Guess(ctx, started.SessionID, secret)
	assert.ErrorIs(t, err, game.ErrSessionFinished)
}

func TestResign(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)

	resigned, err := manager.Resign(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, secret, resigned.Secret.ID)
	assert.NotEmpty(t, resigned.Secret.Label)
	assert.Equal(t, 1, resigned.Result.Rank)

	// A second resignation is rejected.
	_, err = manager.Resign(ctx, started.SessionID)
	assert.ErrorIs(t, err, game.ErrSessionFinished)
}

func TestRanking_onlyAfterGameEnds(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)

	_, err = manager.Ranking(ctx, started.SessionID)
	assert.ErrorIs(t, err, game.ErrRankingNotAvailable)

	_, err = manager.Resign(ctx, started.SessionID)
	require.NoError(t, err)

	entries, err := manager.Ranking(ctx, started.SessionID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, secret, entries[0].ID)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestDetails_availableDuringActiveGame(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)
	wrong := wrongGuess(t, store, started.SessionID, secret)

	details, err := manager.Details(ctx, started.SessionID, wrong)
	require.NoError(t, err)
	assert.Equal(t, wrong, details.ID)
	assert.NotEmpty(t, details.Breakdown.Components)
	assert.NotEmpty(t, details.Breakdown.Explanation)

	_, err = manager.Details(ctx, started.SessionID, "Q999")
	assert.ErrorIs(t, err, game.ErrUnknownPerson)
}

func TestGuess_concurrentCorrectGuessesProduceOneWinner(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	started, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	secret := secretOf(t, store, started.SessionID)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = manager.Guess(ctx, started.SessionID, secret)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, game.ErrSessionFinished)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestSessionsDoNotShareState(t *testing.T) {
	t.Parallel()
	manager, store := newTestManager(t, 5)
	ctx := context.Background()

	first, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	second, err := manager.Start(ctx, "all")
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, second.SessionID)
	require.Equal(t, 2, store.Len())

	_, err = manager.Resign(ctx, first.SessionID)
	require.NoError(t, err)

	// The second session is still active.
	secret := secretOf(t, store, second.SessionID)
	result, err := manager.Guess(ctx, second.SessionID, secret)
	require.NoError(t, err)
	assert.True(t, result.GameWon)
}
