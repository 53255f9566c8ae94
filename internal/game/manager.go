package game

import (
	"context"
	"github.com/google/uuid"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/modes"
	"github.com/kritsada/personaguess/internal/ranking"
	"github.com/kritsada/personaguess/internal/similarity"
	"log/slog"
	"math/rand/v2"
)

// Manager coordinates the mode filter, the ranking computation and the
// session store. The index and strategy are fixed for the process lifetime.
type Manager struct {
	index    *corpus.Index
	strategy similarity.Strategy
	catalog  *modes.Catalog
	store    Store
	logger   *slog.Logger
}

func NewManager(
	index *corpus.Index,
	strategy similarity.Strategy,
	catalog *modes.Catalog,
	store Store,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		index:    index,
		strategy: strategy,
		catalog:  catalog,
		store:    store,
		logger:   logger,
	}
}

// StartResult is the public view of a fresh session. The secret stays hidden.
type StartResult struct {
	SessionID string     `json:"session_id"`
	Mode      modes.Mode `json:"mode"`
	PoolSize  int        `json:"pool_size"`
}

// GuessResult scores one guess against the secret.
type GuessResult struct {
	IsCorrect bool          `json:"is_correct"`
	Result    ranking.Entry `json:"result"`
	GameWon   bool          `json:"game_won"`
}

// SecretReveal identifies the secret after resignation.
type SecretReveal struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ResignResult reveals the secret along with its own ranking entry.
type ResignResult struct {
	Secret SecretReveal  `json:"secret"`
	Result ranking.Entry `json:"result"`
}

// MatchDetails itemizes the similarity between one guess and the secret
// without naming the secret.
type MatchDetails struct {
	ID        string               `json:"id"`
	Label     string               `json:"label"`
	Breakdown similarity.Breakdown `json:"breakdown"`
}

// Start resolves the mode (unknown modes fall back to the default), filters
// the pool and picks a secret uniformly at random. An empty pool is an error,
// never a session without a secret.
func (m *Manager) Start(ctx context.Context, modeID string) (StartResult, error) {
	mode := m.catalog.Resolve(modeID)
	pool := mode.Filter(m.index)
	if len(pool) == 0 {
		return StartResult{}, errors.Wrap(ErrEmptyPool, "start game", slog.String("mode", mode.ID))
	}

	session := newSession(uuid.NewString(), mode.ID, pool, pool[rand.IntN(len(pool))])
	m.store.Put(session)

	m.logger.LogAttrs(ctx, slog.LevelInfo, "game started",
		slog.String("sessionID", session.ID),
		slog.String("mode", mode.ID),
		slog.Int("poolSize", len(pool)))
	return StartResult{SessionID: session.ID, Mode: mode, PoolSize: len(pool)}, nil
}

// Guess scores personID against the session secret and flips the session to
// won on a correct guess. Guesses on a finished session are rejected, and a
// repeat guess returns the same result without growing the history.
func (m *Manager) Guess(ctx context.Context, sessionID, personID string) (GuessResult, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return GuessResult{}, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished() {
		return GuessResult{}, ErrSessionFinished
	}

	entry, err := m.poolEntry(session, personID)
	if err != nil {
		return GuessResult{}, err
	}

	session.recordGuess(personID)
	correct := personID == session.SecretID
	if correct {
		session.Won = true
		m.logger.LogAttrs(ctx, slog.LevelInfo, "game won",
			slog.String("sessionID", session.ID),
			slog.Int("guesses", len(session.Guessed)))
	}
	return GuessResult{IsCorrect: correct, Result: entry, GameWon: session.Won}, nil
}

// Resign ends the session and reveals the secret. Resigning a finished
// session is an error.
func (m *Manager) Resign(ctx context.Context, sessionID string) (ResignResult, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return ResignResult{}, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished() {
		return ResignResult{}, ErrSessionFinished
	}

	entry, err := m.poolEntry(session, session.SecretID)
	if err != nil {
		return ResignResult{}, err
	}
	session.Resigned = true

	m.logger.LogAttrs(ctx, slog.LevelInfo, "game resigned",
		slog.String("sessionID", session.ID),
		slog.Int("guesses", len(session.Guessed)))
	return ResignResult{
		Secret: SecretReveal{ID: entry.ID, Label: entry.Label},
		Result: entry,
	}, nil
}

// Ranking returns the full ranked pool. It is only available once the game
// is over, because before that the neighborhood of rank 1 gives the secret
// away.
func (m *Manager) Ranking(_ context.Context, sessionID string) ([]ranking.Entry, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.finished() {
		return nil, ErrRankingNotAvailable
	}
	return ranking.Compute(m.strategy, m.index, session.SecretID, session.Pool)
}

// Details breaks down the similarity between one pool member and the secret.
// It is available at any point of the game; the breakdown never names the
// secret.
func (m *Manager) Details(_ context.Context, sessionID, personID string) (MatchDetails, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return MatchDetails{}, ErrSessionNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	person, err := m.poolPerson(session, personID)
	if err != nil {
		return MatchDetails{}, err
	}
	secret, _ := m.index.Get(session.SecretID)
	return MatchDetails{
		ID:        person.ID,
		Label:     person.Label,
		Breakdown: m.strategy.Breakdown(secret, person),
	}, nil
}

// poolEntry ranks the whole pool and returns the entry for personID.
func (m *Manager) poolEntry(session *Session, personID string) (ranking.Entry, error) {
	if _, err := m.poolPerson(session, personID); err != nil {
		return ranking.Entry{}, err
	}
	entries, err := ranking.Compute(m.strategy, m.index, session.SecretID, session.Pool)
	if err != nil {
		return ranking.Entry{}, err
	}
	for _, entry := range entries {
		if entry.ID == personID {
			return entry, nil
		}
	}
	return ranking.Entry{}, errors.Wrap(ErrUnknownPerson, "rank guess", slog.String("id", personID))
}

// poolPerson resolves personID within the session's pool. Ids outside the
// corpus and ids outside the pool are both unknown to this session.
func (m *Manager) poolPerson(session *Session, personID string) (*corpus.Person, error) {
	person, ok := m.index.Get(personID)
	if !ok {
		return nil, errors.Wrap(ErrUnknownPerson, "resolve person", slog.String("id", personID))
	}
	for _, id := range session.Pool {
		if id == personID {
			return person, nil
		}
	}
	return nil, errors.Wrap(ErrUnknownPerson, "person outside session pool", slog.String("id", personID))
}
