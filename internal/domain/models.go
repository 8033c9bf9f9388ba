package domain

import (
	"sort"
	"time"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Arcana classifies a card as major or minor.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Suit is one of the four minor arcana suits. Empty for major arcana.
type Suit string

const (
	SuitWands     Suit = "wands"
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

// Card is an immutable catalog entry. Loaded once at startup, never mutated.
type Card struct {
	Name        string   `json:"name"`
	NameEn      string   `json:"nameEn"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Upright     string   `json:"upright"`
	Reversed    string   `json:"reversed"`
	Keywords    []string `json:"keywords"`
	Image       string   `json:"image,omitempty"`
	Arcana      Arcana   `json:"-"`
	Suit        Suit     `json:"-"`
}

// Meaning returns the upright or reversed meaning text.
func (c Card) Meaning(reversed bool) string {
	if reversed {
		return c.Reversed
	}
	return c.Upright
}

// Spread is an immutable catalog entry describing a card layout.
type Spread struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	CardsCount  int      `json:"cardsCount"`
	Positions   []string `json:"positions"`
	Description string   `json:"description"`
	Instruction string   `json:"instruction"`
}

// ResolvedCard is a card plus the orientation it was drawn in. It lives only
// for the duration of one interpretation request.
type ResolvedCard struct {
	Card     Card
	Reversed bool
}

// Session tracks one user's in-progress spread awaiting card input.
// Positions are copied from the spread at creation so later catalog changes
// never alter an open session.
type Session struct {
	SpreadID   string
	SpreadName string
	CardsCount int
	Positions  []string
	CreatedAt  time.Time
}

// CardSnapshot is the by-value card record embedded into a HistoryEntry.
// It deliberately holds no reference into the catalog.
type CardSnapshot struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	Reversed bool   `json:"isReversed"`
}

// HistoryEntry is one persisted completed reading.
type HistoryEntry struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	SpreadName     string         `json:"spreadName"`
	Cards          []CardSnapshot `json:"cards"`
	Interpretation string         `json:"interpretation"`
	Date           string         `json:"date"`
}

// Snapshot converts a resolved card to its history representation.
func Snapshot(rc ResolvedCard) CardSnapshot {
	return CardSnapshot{
		Name:     rc.Card.Name,
		Emoji:    rc.Card.Emoji,
		Reversed: rc.Reversed,
	}
}

// NameCount is a frequency bucket, kept in discovery order.
type NameCount struct {
	Name  string
	Count int
}

// Stats aggregates a user's stored history.
type Stats struct {
	TotalSpreads int
	SpreadFreq   []NameCount
	CardFreq     []NameCount
	FirstDate    string
	LastDate     string
}

// TopN returns the n highest counts, descending, ties broken by discovery
// order. The input slice is not modified.
func TopN(counts []NameCount, n int) []NameCount {
	out := make([]NameCount, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
