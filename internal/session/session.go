package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Session is one game in progress. Its board may only be touched through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	board    *mines.Board
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's board.
func (s *Session) Do(fn func(b *mines.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Store struct {
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	rnd      *rand.Rand
	nextID   int64
	sessions map[string]*Session
}

func NewStore(logger *slog.Logger, rnd *rand.Rand, ttl time.Duration) *Store {
	return &Store{
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		rnd:      rnd,
		sessions: make(map[string]*Session),
	}
}

// Create builds a new board and registers a session for it.
func (st *Store) Create(size, mineCount int) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	board, err := mines.New(size, mineCount, st.rnd)
	if err != nil {
		return nil, fmt.Errorf("unable to create board: %w", err)
	}

	st.nextID++
	now := st.now()
	s := &Session{
		ID:        strconv.FormatInt(st.nextID, 10),
		CreatedAt: now,
		board:     board,
		lastSeen:  now,
	}
	st.sessions[s.ID] = s

	st.logger.Debug("created game session",
		slog.String("id", s.ID),
		slog.Int("size", size),
		slog.Int("mineCount", mineCount),
	)
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions that have not been used for longer than the store's
// TTL and returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.ttl {
			delete(st.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		st.logger.Info("evicted idle game sessions",
			slog.Int("evicted", evicted),
			slog.Int("remaining", len(st.sessions)),
		)
	}
	return evicted
}

// Run sweeps the store every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st.Sweep(st.now())
		}
	}
}
