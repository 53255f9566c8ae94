// Package game holds the per-session state machine and its store.
package game

import (
	"github.com/kritsada/personaguess/internal/errors"
	"sync"
)

var (
	ErrSessionNotFound     = errors.NewSentinel("session not found")
	ErrUnknownPerson       = errors.NewSentinel("unknown person")
	ErrEmptyPool           = errors.NewSentinel("mode filter produced an empty pool")
	ErrSessionFinished     = errors.NewSentinel("session already finished")
	ErrRankingNotAvailable = errors.NewSentinel("ranking not available before the game ends")
)

// Session is one game: a fixed pool, a hidden secret and the guesses made so
// far. A session is ACTIVE until it is won or resigned; both are terminal.
//
// All mutation happens under mu so concurrent guesses against the same
// session serialize. Sessions on different ids never contend.
type Session struct {
	ID       string
	ModeID   string
	Pool     []string
	SecretID string
	Guessed  []string
	Won      bool
	Resigned bool

	mu      sync.Mutex
	guessed map[string]struct{}
}

func newSession(id, modeID string, pool []string, secretID string) *Session {
	return &Session{
		ID:       id,
		ModeID:   modeID,
		Pool:     pool,
		SecretID: secretID,
		guessed:  map[string]struct{}{},
	}
}

func (s *Session) finished() bool {
	return s.Won || s.Resigned
}

// recordGuess appends the id to the guess history unless it was already
// guessed, keeping repeat guesses idempotent.
func (s *Session) recordGuess(id string) {
	if _, ok := s.guessed[id]; ok {
		return
	}
	s.guessed[id] = struct{}{}
	s.Guessed = append(s.Guessed, id)
}

// Store maps session ids to sessions. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(id string) (*Session, bool)
	Put(session *Session)
}

// MemoryStore keeps sessions in process memory; they vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]*Session{}}
}

func (s *MemoryStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
