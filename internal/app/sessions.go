package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

const (
	// SessionTTL is how long an idle session survives before the sweeper
	// removes it.
	SessionTTL = time.Hour
	// SweepInterval is how often the sweeper runs.
	SweepInterval = 30 * time.Minute
)

// SessionRegistry maps a user id to at most one active spread session.
// A single mutex guards every mutation, including the sweep, so a
// half-written session is never observable.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]domain.Session
	ttl      time.Duration
	logger   *slog.Logger
}

func NewSessionRegistry(ttl time.Duration, logger *slog.Logger) *SessionRegistry {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionRegistry{
		sessions: make(map[int64]domain.Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Open starts a session for the given spread, unconditionally replacing any
// existing session for that user. Position labels are copied so later catalog
// edits never change an open session.
func (r *SessionRegistry) Open(userID int64, spread domain.Spread) domain.Session {
	positions := make([]string, len(spread.Positions))
	copy(positions, spread.Positions)

	s := domain.Session{
		SpreadID:   spread.ID,
		SpreadName: spread.Name,
		CardsCount: spread.CardsCount,
		Positions:  positions,
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	r.sessions[userID] = s
	r.mu.Unlock()

	return s
}

// Get returns the user's active session, if any. No side effects.
func (r *SessionRegistry) Get(userID int64) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Close removes the user's session if present. Idempotent.
func (r *SessionRegistry) Close(userID int64) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

// Sweep removes every session older than the TTL relative to now and returns
// how many were removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for userID, s := range r.sessions {
		if now.Sub(s.CreatedAt) > r.ttl {
			delete(r.sessions, userID)
			removed++
			if r.logger != nil {
				r.logger.Info("swept stale session", "user_id", userID, "spread", s.SpreadName)
			}
		}
	}
	return removed
}

// RunSweeper sweeps on a fixed interval until ctx is cancelled.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 && r.logger != nil {
				r.logger.Info("session sweep complete", "removed", n)
			}
		}
	}
}
