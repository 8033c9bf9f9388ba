// Package history persists per-user reading logs as one JSON file per user.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

// MaxEntries caps every user's log; the oldest entries are dropped first.
const MaxEntries = 10

// dateLayout is the human-formatted display date stored with each entry.
const dateLayout = "02.01.2006, 15:04"

// Store keeps one <userID>.json file per user with full-rewrite-on-write
// semantics. Reads are fail-open: a missing or unreadable file is an empty
// log. A mutex per user serializes writes for the same log.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	users map[int64]*sync.Mutex
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		now:    time.Now,
		users:  make(map[int64]*sync.Mutex),
	}, nil
}

func (s *Store) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mu, ok := s.users[userID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.users[userID] = mu
	return mu
}

func (s *Store) path(userID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10)+".json")
}

// load never fails: anything short of a valid file yields an empty log.
func (s *Store) load(userID int64) []domain.HistoryEntry {
	raw, err := os.ReadFile(s.path(userID))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("history read failed, treating as empty", "user_id", userID, "error", err)
		}
		return nil
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("history file corrupt, treating as empty", "user_id", userID, "error", err)
		return nil
	}
	return entries
}

func (s *Store) save(userID int64, entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", domain.ErrPersistence, err)
	}
	if err := os.WriteFile(s.path(userID), raw, 0o644); err != nil {
		return fmt.Errorf("%w: write: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Append prepends entry with a freshly generated id, timestamp and display
// date, truncates to MaxEntries and persists. The stored entry is returned
// even when the write failed, so the caller can still present it.
func (s *Store) Append(userID int64, entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	entries := s.load(userID)

	now := s.now()
	entry.ID = newEntryID(now, entries)
	entry.Timestamp = now
	entry.Date = now.Format(dateLayout)

	entries = append([]domain.HistoryEntry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	return entry, s.save(userID, entries)
}

// newEntryID derives a millisecond-timestamp id, bumped until unique within
// the user's log.
func newEntryID(now time.Time, existing []domain.HistoryEntry) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		taken := false
		for _, e := range existing {
			if e.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ms++
	}
}

// List returns at most limit entries, most recent first.
func (s *Store) List(userID int64, limit int) []domain.HistoryEntry {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	entries := s.load(userID)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (s *Store) GetByID(userID int64, id string) (domain.HistoryEntry, bool) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	for _, e := range s.load(userID) {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

// DeleteByID removes one entry and persists the filtered log. A miss is a
// no-op returning false.
func (s *Store) DeleteByID(userID int64, id string) bool {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	entries := s.load(userID)
	filtered := entries[:0:0]
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(entries) {
		return false
	}

	if err := s.save(userID, filtered); err != nil {
		s.logger.Warn("history delete not persisted", "user_id", userID, "error", err)
		return false
	}
	return true
}

// Clear persists an empty log. Idempotent.
func (s *Store) Clear(userID int64) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.save(userID, nil)
}

// Stats aggregates the stored log. Frequency slices keep discovery order
// (newest entry first), so TopN tie-breaking is stable.
func (s *Store) Stats(userID int64) domain.Stats {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	entries := s.load(userID)

	stats := domain.Stats{TotalSpreads: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	stats.LastDate = entries[0].Date
	stats.FirstDate = entries[len(entries)-1].Date

	spreadIdx := make(map[string]int)
	cardIdx := make(map[string]int)
	for _, e := range entries {
		if i, ok := spreadIdx[e.SpreadName]; ok {
			stats.SpreadFreq[i].Count++
		} else {
			spreadIdx[e.SpreadName] = len(stats.SpreadFreq)
			stats.SpreadFreq = append(stats.SpreadFreq, domain.NameCount{Name: e.SpreadName, Count: 1})
		}
		for _, c := range e.Cards {
			if i, ok := cardIdx[c.Name]; ok {
				stats.CardFreq[i].Count++
			} else {
				cardIdx[c.Name] = len(stats.CardFreq)
				stats.CardFreq = append(stats.CardFreq, domain.NameCount{Name: c.Name, Count: 1})
			}
		}
	}

	return stats
}
