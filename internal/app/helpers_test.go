package app_test

import (
	"context"
	"log/slog"
	"strings"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

// mockCatalog is a tiny in-memory card catalog for parser and service tests.
type mockCatalog struct {
	cards []domain.Card
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{cards: []domain.Card{
		{Name: "Шут", NameEn: "The Fool", Emoji: "🃏", Upright: "Новые начинания.", Reversed: "Безрассудство."},
		{Name: "Маг", NameEn: "The Magician", Emoji: "🎩", Upright: "Сила воли.", Reversed: "Манипуляции."},
		{Name: "Звезда", NameEn: "The Star", Emoji: "⭐", Upright: "Надежда.", Reversed: "Разочарование."},
		{Name: "Луна", NameEn: "The Moon", Emoji: "🌕", Upright: "Интуиция.", Reversed: "Прояснение."},
		{Name: "Десятка Кубков", NameEn: "Ten of Cups", Emoji: "💧", Upright: "Полнота.", Reversed: "Груз."},
	}}
}

func (m *mockCatalog) AllCards() []domain.Card    { return m.cards }
func (m *mockCatalog) MajorArcana() []domain.Card { return m.cards }

func (m *mockCatalog) SuitCards(domain.Suit) []domain.Card { return nil }

func (m *mockCatalog) FindByName(name string) (domain.Card, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range m.cards {
		if strings.ToLower(c.Name) == key || strings.ToLower(c.NameEn) == key {
			return c, true
		}
	}
	return domain.Card{}, false
}

type mockInterpreter struct {
	out   string
	err   error
	calls int
	// last prompt seen, for assertions on composition wiring.
	prompt string
}

func (m *mockInterpreter) Interpret(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.out, m.err
}

// mockHistory records appends in memory.
type mockHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistory) Append(_ int64, e domain.HistoryEntry) (domain.HistoryEntry, error) {
	e.ID = "test-id"
	m.entries = append(m.entries, e)
	return e, m.err
}

func (m *mockHistory) List(int64, int) []domain.HistoryEntry { return m.entries }

func (m *mockHistory) GetByID(_ int64, id string) (domain.HistoryEntry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

func (m *mockHistory) DeleteByID(int64, string) bool { return false }
func (m *mockHistory) Clear(int64) error             { return nil }
func (m *mockHistory) Stats(int64) domain.Stats      { return domain.Stats{} }

// fixedRNG returns values from a pre-set sequence, repeating the last one.
type fixedRNG struct {
	values []int
	idx    int
}

func (r *fixedRNG) Intn(n int) int {
	v := r.values[r.idx]
	if r.idx < len(r.values)-1 {
		r.idx++
	}
	return v % n
}

func testLogger() *slog.Logger { return slog.Default() }

func threeCardSpread() domain.Spread {
	return domain.Spread{
		ID:         "three_cards",
		Name:       "Три карты",
		Emoji:      "🔮",
		CardsCount: 3,
		Positions: []string{
			"1. Прошлое - истоки ситуации",
			"2. Настоящее - текущее положение дел",
			"3. Будущее - вероятное развитие событий",
		},
	}
}
