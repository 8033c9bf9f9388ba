package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avetisdav94/TarotBot/internal/app"
	"github.com/avetisdav94/TarotBot/internal/domain"
)

func newReadingFixture(interp *mockInterpreter, hist *mockHistory) (*app.ReadingService, *app.SessionRegistry) {
	sessions := app.NewSessionRegistry(time.Hour, testLogger())
	parser := app.NewCardParser(newMockCatalog())
	svc := app.NewReadingService(sessions, parser, interp, hist, testLogger())
	return svc, sessions
}

func TestValidateCards_Success(t *testing.T) {
	interp := &mockInterpreter{out: "x"}
	svc, sessions := newReadingFixture(interp, &mockHistory{})
	sessions.Open(42, threeCardSpread())

	session, cards, err := svc.ValidateCards(42, "Шут, Маг, Звезда перевернутая")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.SpreadName != "Три карты" {
		t.Errorf("unexpected session: %+v", session)
	}
	if len(cards) != 3 || !cards[2].Reversed {
		t.Errorf("unexpected cards: %+v", cards)
	}

	// Validation is purely local: the LLM is reached only by CompleteReading.
	if interp.calls != 0 {
		t.Error("validation must not call the LLM")
	}
	if _, ok := sessions.Get(42); !ok {
		t.Error("validation must leave the session open")
	}
}

func TestValidateCards_NoSession(t *testing.T) {
	svc, _ := newReadingFixture(&mockInterpreter{}, &mockHistory{})

	_, _, err := svc.ValidateCards(42, "Шут")
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestValidateCards_ParseErrors_SessionStaysOpen(t *testing.T) {
	interp := &mockInterpreter{out: "x"}
	svc, sessions := newReadingFixture(interp, &mockHistory{})
	sessions.Open(42, threeCardSpread())

	session, _, err := svc.ValidateCards(42, "Шут, Небывалая Карта, Звезда")

	var parseErrs *domain.ParseErrors
	if !errors.As(err, &parseErrs) {
		t.Fatalf("expected ParseErrors, got %v", err)
	}
	if len(parseErrs.Messages) != 1 || !strings.Contains(parseErrs.Messages[0], "Небывалая Карта") {
		t.Errorf("unexpected messages: %v", parseErrs.Messages)
	}
	// The session comes back with the error so the caller can report on it.
	if session.SpreadName != "Три карты" {
		t.Errorf("expected session alongside the error, got %+v", session)
	}
	if interp.calls != 0 {
		t.Error("LLM must not be called on a parse failure")
	}
	if _, ok := sessions.Get(42); !ok {
		t.Error("session must stay open after a parse failure")
	}
}

func TestValidateCards_CountMismatch_SessionStaysOpen(t *testing.T) {
	interp := &mockInterpreter{out: "x"}
	svc, sessions := newReadingFixture(interp, &mockHistory{})
	sessions.Open(42, threeCardSpread())

	_, _, err := svc.ValidateCards(42, "Шут, Маг")

	var countErr *domain.CountMismatchError
	if !errors.As(err, &countErr) {
		t.Fatalf("expected CountMismatchError, got %v", err)
	}
	if countErr.Expected != 3 || countErr.Got != 2 {
		t.Errorf("unexpected counts: %+v", countErr)
	}
	if interp.calls != 0 {
		t.Error("LLM must not be called on a count mismatch")
	}
	if _, ok := sessions.Get(42); !ok {
		t.Error("session must stay open after a count mismatch")
	}
}

func TestCompleteReading_Success(t *testing.T) {
	interp := &mockInterpreter{out: "Глубокое толкование."}
	hist := &mockHistory{}
	svc, sessions := newReadingFixture(interp, hist)
	sessions.Open(42, threeCardSpread())

	session, cards, err := svc.ValidateCards(42, "Шут, Маг, Звезда перевернутая")
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	reading, err := svc.CompleteReading(context.Background(), 42, session, cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.Interpretation != "Глубокое толкование." {
		t.Errorf("unexpected interpretation: %s", reading.Interpretation)
	}
	if !reading.Saved || reading.Entry.ID != "test-id" {
		t.Errorf("expected saved entry with id, got %+v", reading.Entry)
	}
	if len(reading.Cards) != 3 || !reading.Cards[2].Reversed {
		t.Errorf("unexpected cards: %+v", reading.Cards)
	}

	// The composed prompt pairs positions with cards.
	if !strings.Contains(interp.prompt, "1. Прошлое - истоки ситуации: Шут (прямая)") {
		t.Errorf("prompt not composed from session positions:\n%s", interp.prompt)
	}

	// Session is consumed.
	if _, ok := sessions.Get(42); ok {
		t.Error("session must be closed after success")
	}

	// History snapshot carries names and flags, not catalog references.
	if len(hist.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(hist.entries))
	}
	snap := hist.entries[0].Cards[2]
	if snap.Name != "Звезда" || !snap.Reversed {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestCompleteReading_UpstreamFailure_AbortsSession(t *testing.T) {
	interp := &mockInterpreter{err: domain.ErrUpstreamLLM}
	hist := &mockHistory{}
	svc, sessions := newReadingFixture(interp, hist)
	sessions.Open(42, threeCardSpread())

	session, cards, err := svc.ValidateCards(42, "Шут, Маг, Звезда")
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	_, err = svc.CompleteReading(context.Background(), 42, session, cards)
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}

	if _, ok := sessions.Get(42); ok {
		t.Error("session must be aborted on upstream failure")
	}
	if len(hist.entries) != 0 {
		t.Error("nothing must be persisted on upstream failure")
	}
}

func TestCompleteReading_HistoryWriteFailure_NonFatal(t *testing.T) {
	interp := &mockInterpreter{out: "Толкование."}
	hist := &mockHistory{err: domain.ErrPersistence}
	svc, sessions := newReadingFixture(interp, hist)
	sessions.Open(42, threeCardSpread())

	session, cards, err := svc.ValidateCards(42, "Шут, Маг, Звезда")
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	reading, err := svc.CompleteReading(context.Background(), 42, session, cards)
	if err != nil {
		t.Fatalf("history write failure must not fail the reading: %v", err)
	}
	if reading.Saved {
		t.Error("Saved must be false when the write failed")
	}
	if reading.Interpretation != "Толкование." {
		t.Errorf("interpretation must still be delivered: %s", reading.Interpretation)
	}
	if _, ok := sessions.Get(42); ok {
		t.Error("session must be closed even when the write failed")
	}
}
