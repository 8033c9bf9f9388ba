package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetisdav94/TarotBot/internal/app"
	"github.com/avetisdav94/TarotBot/internal/domain"
)

// recorder collects Bot API calls and interpreter invocations in the order
// they happen, so tests can assert on sequencing.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.all() {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func indexWithPrefix(events []string, prefix string) int {
	for i, e := range events {
		if strings.HasPrefix(e, prefix) {
			return i
		}
	}
	return -1
}

// fakeBotAPI serves a minimal Bot API so the real client can be driven
// against it. Every method call is recorded.
func fakeBotAPI(t *testing.T, rec *recorder) *tgbotapi.BotAPI {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := path.Base(r.URL.Path)
		_ = r.ParseForm()
		switch method {
		case "getMe":
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Test","username":"test_tarot_bot"}}`)
		case "sendMessage":
			rec.add("sendMessage:" + r.PostFormValue("text"))
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}}`)
		case "answerCallbackQuery":
			rec.add("answerCallbackQuery")
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		default:
			rec.add(method)
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	}))
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	return api
}

type stubCatalog struct {
	cards   []domain.Card
	spreads []domain.Spread
}

func (c *stubCatalog) AllCards() []domain.Card             { return c.cards }
func (c *stubCatalog) MajorArcana() []domain.Card          { return c.cards }
func (c *stubCatalog) SuitCards(domain.Suit) []domain.Card { return nil }

func (c *stubCatalog) FindByName(name string) (domain.Card, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, card := range c.cards {
		if strings.ToLower(card.Name) == key || strings.ToLower(card.NameEn) == key {
			return card, true
		}
	}
	return domain.Card{}, false
}

func (c *stubCatalog) Spreads() []domain.Spread { return c.spreads }

func (c *stubCatalog) SpreadByID(id string) (domain.Spread, bool) {
	for _, sp := range c.spreads {
		if sp.ID == id {
			return sp, true
		}
	}
	return domain.Spread{}, false
}

type stubHistory struct {
	entries []domain.HistoryEntry
}

func (h *stubHistory) Append(_ int64, e domain.HistoryEntry) (domain.HistoryEntry, error) {
	e.ID = "h1"
	h.entries = append([]domain.HistoryEntry{e}, h.entries...)
	return e, nil
}

func (h *stubHistory) List(int64, int) []domain.HistoryEntry { return h.entries }

func (h *stubHistory) GetByID(_ int64, id string) (domain.HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

func (h *stubHistory) DeleteByID(_ int64, id string) bool {
	filtered := h.entries[:0:0]
	for _, e := range h.entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	found := len(filtered) != len(h.entries)
	h.entries = filtered
	return found
}

func (h *stubHistory) Clear(int64) error {
	h.entries = nil
	return nil
}

func (h *stubHistory) Stats(int64) domain.Stats {
	return domain.Stats{TotalSpreads: len(h.entries)}
}

// stubInterpreter records its invocation so ordering against sends is
// observable.
type stubInterpreter struct {
	rec *recorder
	out string
	err error
}

func (i *stubInterpreter) Interpret(context.Context, string) (string, error) {
	i.rec.add("interpret")
	return i.out, i.err
}

type zeroRNG struct{}

func (zeroRNG) Intn(int) int { return 0 }

func testSpread() domain.Spread {
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

func newTestBot(t *testing.T, rec *recorder, interp *stubInterpreter, hist *stubHistory) *Bot {
	t.Helper()

	cat := &stubCatalog{
		cards: []domain.Card{
			{Name: "Шут", NameEn: "The Fool", Emoji: "🃏", Upright: "Начала.", Reversed: "Риск."},
			{Name: "Маг", NameEn: "The Magician", Emoji: "🎩", Upright: "Воля.", Reversed: "Обман."},
			{Name: "Звезда", NameEn: "The Star", Emoji: "⭐", Upright: "Надежда.", Reversed: "Сомнение."},
		},
		spreads: []domain.Spread{testSpread()},
	}

	logger := slog.Default()
	sessions := app.NewSessionRegistry(time.Hour, logger)
	reading := app.NewReadingService(sessions, app.NewCardParser(cat), interp, hist, logger)

	return &Bot{
		api:     fakeBotAPI(t, rec),
		cards:   cat,
		spreads: cat,
		reading: reading,
		draw:    app.NewDrawService(cat, zeroRNG{}),
		history: hist,
		logger:  logger,
	}
}

func TestHandleCardsInput_ProgressPrecedesInterpretation(t *testing.T) {
	rec := &recorder{}
	interp := &stubInterpreter{rec: rec, out: "Глубокое толкование."}
	b := newTestBot(t, rec, interp, &stubHistory{})

	b.reading.Sessions().Open(1, testSpread())
	b.handleCardsInput(context.Background(), 1, "Шут, Маг, Звезда")

	events := rec.all()
	cardsIdx := indexWithPrefix(events, "sendMessage:🎴")
	progressIdx := indexWithPrefix(events, "sendMessage:🤖")
	interpIdx := indexWithPrefix(events, "interpret")
	resultIdx := indexWithPrefix(events, "sendMessage:🔮")

	require.GreaterOrEqual(t, cardsIdx, 0, "cards list must be sent: %v", events)
	require.GreaterOrEqual(t, progressIdx, 0, "progress notice must be sent: %v", events)
	require.GreaterOrEqual(t, interpIdx, 0, "interpreter must be called: %v", events)
	require.GreaterOrEqual(t, resultIdx, 0, "result must be sent: %v", events)

	// The user sees the recognized cards and the wait notice while the
	// upstream call is still in flight, and the result only after it.
	assert.Less(t, cardsIdx, interpIdx, "cards list must precede the LLM call: %v", events)
	assert.Less(t, progressIdx, interpIdx, "progress notice must precede the LLM call: %v", events)
	assert.Greater(t, resultIdx, interpIdx, "result must follow the LLM call: %v", events)
}

func TestHandleCardsInput_ValidationFailureSendsNoProgress(t *testing.T) {
	rec := &recorder{}
	interp := &stubInterpreter{rec: rec, out: "x"}
	b := newTestBot(t, rec, interp, &stubHistory{})

	b.reading.Sessions().Open(1, testSpread())
	b.handleCardsInput(context.Background(), 1, "Шут, Маг")

	events := rec.all()
	assert.Equal(t, -1, indexWithPrefix(events, "sendMessage:🎴"), "no cards list on a count mismatch: %v", events)
	assert.Equal(t, -1, indexWithPrefix(events, "sendMessage:🤖"), "no progress notice on a count mismatch: %v", events)
	assert.Equal(t, -1, indexWithPrefix(events, "interpret"), "no LLM call on a count mismatch: %v", events)
}

func TestHandleCallback_AnswersQueryExactlyOnce(t *testing.T) {
	seeded := []domain.HistoryEntry{{
		ID:         "h1",
		SpreadName: "Три карты",
		Date:       "01.06.2025, 12:00",
		Cards:      []domain.CardSnapshot{{Name: "Шут", Emoji: "🃏"}},
	}}

	tests := []struct {
		name string
		data string
	}{
		{"main menu", "main_menu"},
		{"spread view", "spread_three_cards"},
		{"spread view missing", "spread_missing"},
		{"start spread", "start_spread_three_cards"},
		{"view history entry", "view_history_h1"},
		{"view history missing", "view_history_missing"},
		{"delete history entry", "delete_history_h1"},
		{"delete history missing", "delete_history_missing"},
		{"clear history", "clear_history_confirmed"},
		{"show stats", "show_stats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			hist := &stubHistory{entries: append([]domain.HistoryEntry(nil), seeded...)}
			b := newTestBot(t, rec, &stubInterpreter{rec: rec}, hist)

			b.handleCallback(&tgbotapi.CallbackQuery{
				ID:      "cb1",
				Data:    tt.data,
				Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 1}},
			})

			assert.Equal(t, 1, rec.count("answerCallbackQuery"),
				"query must be answered exactly once, events: %v", rec.all())
		})
	}
}
