package ports

import "github.com/avetisdav94/TarotBot/internal/domain"

// HistoryStore keeps a bounded most-recent-first reading log per user.
//
// Reads are fail-open: a broken or missing backing file behaves like an empty
// log. Write failures are returned, not panicked, so that losing a history
// write never aborts a reading already shown to the user.
type HistoryStore interface {
	// Append prepends entry to the user's log, generating its id, timestamp
	// and display date, and truncates the log to the retention cap. The
	// stored entry is returned even when persisting failed.
	Append(userID int64, entry domain.HistoryEntry) (domain.HistoryEntry, error)
	// List returns at most limit entries, most recent first.
	List(userID int64, limit int) []domain.HistoryEntry
	// GetByID looks an entry up by its generated id.
	GetByID(userID int64, id string) (domain.HistoryEntry, bool)
	// DeleteByID removes one entry. Returns false when the id is absent.
	DeleteByID(userID int64, id string) bool
	// Clear persists an empty log. Idempotent.
	Clear(userID int64) error
	// Stats aggregates the stored log.
	Stats(userID int64) domain.Stats
}
